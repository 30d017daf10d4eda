package audit

import (
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/ops-console/internal/assignment"
	"github.com/spec-kit/ops-console/internal/domain"
)

var testAuthor = Author{Name: "Laura Méndez", Avatar: "https://cdn.example.com/laura.png"}

func testResolver() *assignment.Resolver {
	users := []domain.User{
		{ID: "u-1", LegacyID: "900", Name: "Laura Méndez", Email: "laura@example.com"},
		{ID: "u-2", Name: "Diego Pereira", Email: "diego@example.com"},
	}
	groups := []domain.Group{
		{ID: "g-1", Name: "Soporte"},
		{ID: "g-2", Name: "Instalaciones"},
	}
	return assignment.NewResolver(users, groups)
}

func baseSnapshot() domain.TicketSnapshot {
	return domain.TicketSnapshot{
		Status:   domain.StatusNuevo,
		Priority: domain.PriorityMedia,
	}
}

func TestBuildChange_statusOnly(t *testing.T) {
	prev := baseSnapshot()
	next := prev
	next.Status = domain.StatusAbierto

	entry := BuildChange(prev, next, "", MediaSet{}, testResolver(), testAuthor, time.Now())
	if entry == nil {
		t.Fatal("BuildChange() = nil, want annotation")
	}
	if !strings.Contains(entry.Text, "Estado: <b>Nuevo</b> → <b>Abierto</b>") {
		t.Errorf("missing status change line, got %q", entry.Text)
	}
	if strings.Contains(entry.Text, headingDetail) {
		t.Errorf("unexpected detail block in %q", entry.Text)
	}
	if got := strings.Count(entry.Text, "<li>"); got != 1 {
		t.Errorf("change line count = %d, want 1", got)
	}
	if entry.User != testAuthor.Name {
		t.Errorf("User = %q, want %q", entry.User, testAuthor.Name)
	}
}

func TestBuildChange_identicalSnapshots(t *testing.T) {
	prev := baseSnapshot()

	if entry := BuildChange(prev, prev, "", MediaSet{}, testResolver(), testAuthor, time.Now()); entry != nil {
		t.Fatalf("BuildChange() = %+v, want nil", entry)
	}
}

func TestBuildChange_emptyEditorMarkupIsNoNote(t *testing.T) {
	prev := baseSnapshot()
	for _, markup := range []string{"", "   ", "<p></p>", "<p><br></p>", "<p> </p>", "<p>&nbsp;</p>", "<br>"} {
		if entry := BuildChange(prev, prev, markup, MediaSet{}, testResolver(), testAuthor, time.Now()); entry != nil {
			t.Errorf("BuildChange(note=%q) produced an annotation", markup)
		}
	}
}

func TestBuildChange_noteOnly(t *testing.T) {
	prev := baseSnapshot()
	note := "<p>Se coordinó visita con el cliente</p>"

	entry := BuildChange(prev, prev, note, MediaSet{}, testResolver(), testAuthor, time.Now())
	if entry == nil {
		t.Fatal("BuildChange() = nil, want annotation")
	}
	if strings.Contains(entry.Text, headingChanges) {
		t.Errorf("unexpected changes block in %q", entry.Text)
	}
	if !strings.Contains(entry.Text, headingDetail) {
		t.Errorf("missing detail block in %q", entry.Text)
	}
	if !strings.Contains(entry.Text, note) {
		t.Errorf("note markup not carried verbatim in %q", entry.Text)
	}
}

func TestBuildChange_mediaOnlyPlaceholder(t *testing.T) {
	prev := baseSnapshot()
	pending := MediaSet{Attachments: []domain.Attachment{{ID: "a-1", Name: "foto.jpg"}}}

	entry := BuildChange(prev, prev, "", pending, testResolver(), testAuthor, time.Now())
	if entry == nil {
		t.Fatal("BuildChange() = nil, want placeholder annotation carrying the media")
	}
	if !strings.Contains(entry.Text, placeholder) {
		t.Errorf("Text = %q, want placeholder %q", entry.Text, placeholder)
	}
	if len(entry.Attachments) != 1 {
		t.Errorf("attachments = %d, want 1", len(entry.Attachments))
	}
}

func TestBuildChange_assignmentResolvesDisplayNames(t *testing.T) {
	user := "u-2"
	prev := baseSnapshot()
	next := prev
	next.AssignedTo = &user

	entry := BuildChange(prev, next, "", MediaSet{}, testResolver(), testAuthor, time.Now())
	if entry == nil {
		t.Fatal("BuildChange() = nil, want annotation")
	}
	if !strings.Contains(entry.Text, "Asignado a: <b>Sin asignar</b> → <b>Diego Pereira</b>") {
		t.Errorf("assignment line not resolved, got %q", entry.Text)
	}
}

func TestBuildChange_unresolvedGroupFallsBack(t *testing.T) {
	ghost := "g-999"
	prev := baseSnapshot()
	next := prev
	next.AssignedGroupID = &ghost

	entry := BuildChange(prev, next, "", MediaSet{}, testResolver(), testAuthor, time.Now())
	if entry == nil {
		t.Fatal("BuildChange() = nil, want annotation")
	}
	if !strings.Contains(entry.Text, "Grupo: <b>Sin grupo</b> → <b>Sin grupo</b>") {
		t.Errorf("unresolved group should degrade to fallback, got %q", entry.Text)
	}
}

func TestBuildChange_amountIsOneCompositeChange(t *testing.T) {
	amountOld, amountNew := 1500.0, 1800.5
	prev := baseSnapshot()
	prev.Amount = &amountOld
	prev.AmountCurrency = domain.CurrencyUYU
	next := prev
	next.Amount = &amountNew
	next.AmountCurrency = domain.CurrencyUSD

	entry := BuildChange(prev, next, "", MediaSet{}, testResolver(), testAuthor, time.Now())
	if entry == nil {
		t.Fatal("BuildChange() = nil, want annotation")
	}
	if !strings.Contains(entry.Text, "Importe: <b>1500 UYU</b> → <b>1800.5 USD</b>") {
		t.Errorf("composite amount line wrong, got %q", entry.Text)
	}
	if got := strings.Count(entry.Text, "<li>"); got != 1 {
		t.Errorf("change line count = %d, want 1 composite line", got)
	}
}

func TestBuildChange_currencyAloneIgnoredWithoutAmount(t *testing.T) {
	prev := baseSnapshot()
	prev.AmountCurrency = domain.CurrencyUYU
	next := prev
	next.AmountCurrency = domain.CurrencyUSD

	if entry := BuildChange(prev, next, "", MediaSet{}, testResolver(), testAuthor, time.Now()); entry != nil {
		t.Fatalf("currency change without amount produced %+v, want nil", entry)
	}
}

func TestBuildChange_descriptionPresenceOnly(t *testing.T) {
	prev := baseSnapshot()
	prev.Description = "<p>antes</p>"
	next := prev
	next.Description = "<p>después</p>"

	entry := BuildChange(prev, next, "", MediaSet{}, testResolver(), testAuthor, time.Now())
	if entry == nil {
		t.Fatal("BuildChange() = nil, want annotation")
	}
	if !strings.Contains(entry.Text, "Descripción: <b>actualizada</b>") {
		t.Errorf("missing presence-only description line, got %q", entry.Text)
	}
	if strings.Contains(entry.Text, "después") {
		t.Errorf("description content leaked into trail: %q", entry.Text)
	}
}

func TestBuildChange_fullScenario(t *testing.T) {
	prev := baseSnapshot()
	next := prev
	next.Status = domain.StatusVisita
	next.Priority = domain.PriorityAlta

	pending := MediaSet{Attachments: []domain.Attachment{{ID: "a-1", Name: "medidor.jpg", MimeType: "image/jpeg"}}}
	entry := BuildChange(prev, next, "<p>Revisado en sitio</p>", pending, testResolver(), testAuthor, time.Now())
	if entry == nil {
		t.Fatal("BuildChange() = nil, want annotation")
	}
	for _, want := range []string{
		"Estado: <b>Nuevo</b> → <b>Visita</b>",
		"Prioridad: <b>Media</b> → <b>Alta</b>",
		headingDetail,
		"Revisado en sitio",
	} {
		if !strings.Contains(entry.Text, want) {
			t.Errorf("Text missing %q, got %q", want, entry.Text)
		}
	}
	if len(entry.Attachments) != 1 {
		t.Errorf("attachments = %d, want 1", len(entry.Attachments))
	}
}
