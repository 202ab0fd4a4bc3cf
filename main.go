package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/jirapat-a/careertalk/agent/contract"
	enginex "github.com/jirapat-a/careertalk/agent/engine"
	llmx "github.com/jirapat-a/careertalk/agent/llm"
	personax "github.com/jirapat-a/careertalk/agent/persona"
	storex "github.com/jirapat-a/careertalk/agent/store"
	toolx "github.com/jirapat-a/careertalk/agent/tool"
	configx "github.com/jirapat-a/careertalk/pkg/config"
	_ "github.com/jirapat-a/careertalk/pkg/logger/autoload"
	pushoverx "github.com/jirapat-a/careertalk/pkg/pushover"
)

type AppConfig struct {
	WelcomeMessage string `envconfig:"WELCOME_MESSAGE" default:"Welcome message not set."`
	DatabaseURL    string `envconfig:"DATABASE_URL"`
}

func main() {
	appCfg := configx.MustLoad[AppConfig]("")

	llmCfg := configx.MustLoad[llmx.Config]("OPENAI")
	client := llmx.MustNew(*llmCfg)

	pushCfg := configx.MustLoad[pushoverx.Config]("PUSHOVER")
	sink := pushoverx.NewClient(*pushCfg)

	personaCfg := configx.MustLoad[personax.Config]("PERSONA")
	me := personax.New(*personaCfg)

	ctx := context.Background()

	var leads contractx.LeadStore
	if strings.TrimSpace(appCfg.DatabaseURL) != "" {
		leadStore, err := storex.NewLeadStore(appCfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("open lead store")
		}
		if err := leadStore.Init(ctx); err != nil {
			log.Fatal().Err(err).Msg("init lead store")
		}
		defer leadStore.Close()
		leads = leadStore
	} else {
		log.Warn().Msg("DATABASE_URL not set, recorded leads will not be persisted")
	}

	registry, err := toolx.NewRegistry(sink, leads)
	if err != nil {
		log.Fatal().Err(err).Msg("build tool registry")
	}

	engineCfg := configx.MustLoad[enginex.Config]("ENGINE")
	eng, err := enginex.New(client, registry, me, *engineCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build conversation engine")
	}

	runChatLoop(ctx, eng.Handler(), appCfg.WelcomeMessage)
}

// runChatLoop is a stand-in for the external chat UI: it reads one message
// per line, keeps the session history, and prints the reply.
func runChatLoop(ctx context.Context, chat contractx.ChatHandler, welcome string) {
	fmt.Println(welcome)

	var history []contractx.Turn
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}

		reply, err := chat(ctx, message, history)
		if err != nil {
			log.Error().Err(err).Msg("chat failed")
			fmt.Println("Sorry, something went wrong. Please try again.")
			continue
		}

		fmt.Println(reply)
		history = append(history,
			contractx.Turn{Role: contractx.RoleUser, Content: message},
			contractx.Turn{Role: contractx.RoleAssistant, Content: reply},
		)
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read input")
	}
}
