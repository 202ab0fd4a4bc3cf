package tool

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/jirapat-a/careertalk/agent/contract"
)

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(ctx context.Context, text string) {
	f.messages = append(f.messages, text)
}

type contactRecord struct {
	email string
	name  string
	notes string
}

type fakeLeadStore struct {
	contacts    []contactRecord
	questions   []string
	contactErr  error
	questionErr error
}

func (f *fakeLeadStore) SaveContact(ctx context.Context, email, name, notes string) error {
	if f.contactErr != nil {
		return f.contactErr
	}
	f.contacts = append(f.contacts, contactRecord{email: email, name: name, notes: notes})
	return nil
}

func (f *fakeLeadStore) SaveUnknownQuestion(ctx context.Context, question string) error {
	if f.questionErr != nil {
		return f.questionErr
	}
	f.questions = append(f.questions, question)
	return nil
}

func newTestRegistry(t *testing.T, notifier contractx.Notifier, leads contractx.LeadStore) *Registry {
	t.Helper()
	r, err := NewRegistry(notifier, leads)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return r
}

func TestNewRegistryRequiresNotifier(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(nil, nil)
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSpecsOrder(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, &fakeNotifier{}, nil)
	specs := r.Specs()
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].Name != ToolRecordUserDetails {
		t.Fatalf("unexpected first spec: %s", specs[0].Name)
	}
	if specs[1].Name != ToolRecordUnknownQuestion {
		t.Fatalf("unexpected second spec: %s", specs[1].Name)
	}
	for _, spec := range specs {
		if spec.Description == "" {
			t.Fatalf("spec %s has empty description", spec.Name)
		}
		if spec.Parameters["type"] != "object" {
			t.Fatalf("spec %s parameters must be an object schema", spec.Name)
		}
	}
}

func TestDispatchOrderPreserving(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	r := newTestRegistry(t, notifier, nil)

	reqs := []contractx.ToolCallRequest{
		{ID: "call_a", Name: ToolRecordUserDetails, Arguments: `{"email":"a@b.com"}`},
		{ID: "call_b", Name: "made_up_tool", Arguments: `{}`},
		{ID: "call_c", Name: ToolRecordUnknownQuestion, Arguments: `{"question":"What is X?"}`},
	}

	results, err := r.Dispatch(context.Background(), reqs)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	for i, result := range results {
		if result.ToolCallID != reqs[i].ID {
			t.Fatalf("result[%d] id = %q, want %q", i, result.ToolCallID, reqs[i].ID)
		}
	}
	if results[1].Content != "{}" {
		t.Fatalf("unknown tool must yield empty result, got %q", results[1].Content)
	}
	if len(notifier.messages) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifier.messages))
	}
}

func TestRecordUserDetailsDefaults(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	r := newTestRegistry(t, notifier, nil)

	results, err := r.Dispatch(context.Background(), []contractx.ToolCallRequest{
		{ID: "call_1", Name: ToolRecordUserDetails, Arguments: `{"email":"a@b.com"}`},
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if results[0].Content != `{"recorded":"ok"}` {
		t.Fatalf("unexpected result content: %q", results[0].Content)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notifier.messages))
	}
	msg := notifier.messages[0]
	if !strings.Contains(msg, "a@b.com") {
		t.Fatalf("notification missing email: %q", msg)
	}
	if !strings.Contains(msg, "Name not provided") {
		t.Fatalf("notification missing name placeholder: %q", msg)
	}
	if !strings.Contains(msg, "not provided") {
		t.Fatalf("notification missing notes placeholder: %q", msg)
	}
}

func TestRecordUnknownQuestion(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	r := newTestRegistry(t, notifier, nil)

	results, err := r.Dispatch(context.Background(), []contractx.ToolCallRequest{
		{ID: "call_1", Name: ToolRecordUnknownQuestion, Arguments: `{"question":"What is X?"}`},
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if results[0].Content != `{"recorded":"ok"}` {
		t.Fatalf("unexpected result content: %q", results[0].Content)
	}
	if len(notifier.messages) != 1 || !strings.Contains(notifier.messages[0], "What is X?") {
		t.Fatalf("unexpected notifications: %v", notifier.messages)
	}
}

func TestDispatchMalformedArguments(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, &fakeNotifier{}, nil)

	_, err := r.Dispatch(context.Background(), []contractx.ToolCallRequest{
		{ID: "call_1", Name: ToolRecordUserDetails, Arguments: `{"email":`},
	})
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestRecordUserDetailsMissingEmail(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	r := newTestRegistry(t, notifier, nil)

	_, err := r.Dispatch(context.Background(), []contractx.ToolCallRequest{
		{ID: "call_1", Name: ToolRecordUserDetails, Arguments: `{"name":"Somchai"}`},
	})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("no notification expected, got %d", len(notifier.messages))
	}
}

func TestDispatchPersistsLeads(t *testing.T) {
	t.Parallel()

	leads := &fakeLeadStore{}
	r := newTestRegistry(t, &fakeNotifier{}, leads)

	_, err := r.Dispatch(context.Background(), []contractx.ToolCallRequest{
		{ID: "call_1", Name: ToolRecordUserDetails, Arguments: `{"email":"a@b.com","name":"Somchai","notes":"asked about Go"}`},
		{ID: "call_2", Name: ToolRecordUnknownQuestion, Arguments: `{"question":"What is X?"}`},
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(leads.contacts) != 1 {
		t.Fatalf("expected one contact, got %d", len(leads.contacts))
	}
	got := leads.contacts[0]
	if got.email != "a@b.com" || got.name != "Somchai" || got.notes != "asked about Go" {
		t.Fatalf("unexpected contact: %+v", got)
	}
	if len(leads.questions) != 1 || leads.questions[0] != "What is X?" {
		t.Fatalf("unexpected questions: %v", leads.questions)
	}
}

func TestDispatchLeadStoreErrorDoesNotFailTool(t *testing.T) {
	t.Parallel()

	leads := &fakeLeadStore{contactErr: errors.New("db down")}
	notifier := &fakeNotifier{}
	r := newTestRegistry(t, notifier, leads)

	results, err := r.Dispatch(context.Background(), []contractx.ToolCallRequest{
		{ID: "call_1", Name: ToolRecordUserDetails, Arguments: `{"email":"a@b.com"}`},
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if results[0].Content != `{"recorded":"ok"}` {
		t.Fatalf("tool must still acknowledge, got %q", results[0].Content)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("notification must still be sent, got %d", len(notifier.messages))
	}
}
