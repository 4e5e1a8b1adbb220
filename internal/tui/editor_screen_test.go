package tui

import (
	"testing"

	"github.com/andy/gstbill/internal/app"
	"github.com/andy/gstbill/internal/config"
)

func testEditor() *EditorModel {
	return NewEditorModel(&app.App{Config: &config.Config{}})
}

func findField(m *EditorModel, section, label string) *editorField {
	for i := range m.fields {
		if m.fields[i].section == section && m.fields[i].label == label {
			return &m.fields[i]
		}
	}
	return nil
}

func TestEditorConsigneeFieldsSetShipTo(t *testing.T) {
	m := testEditor()
	if m.draft.Consignee != nil {
		t.Fatal("fresh draft must not carry a consignee")
	}

	name := findField(m, "Consignee (Ship To)", "Name (blank = same as buyer)")
	state := findField(m, "Consignee (Ship To)", "State Name")
	if name == nil || state == nil {
		t.Fatal("editor missing consignee fields")
	}

	name.set("Acme Warehouse")
	state.set("Kerala")
	if m.draft.Consignee == nil {
		t.Fatal("setting a consignee field must allocate the consignee")
	}
	if m.draft.Consignee.Name != "Acme Warehouse" || m.draft.Consignee.StateName != "Kerala" {
		t.Errorf("consignee = %+v", m.draft.Consignee)
	}
	if got := m.draft.ShipTo(); got.Name != "Acme Warehouse" {
		t.Errorf("ShipTo().Name = %q, want the entered consignee", got.Name)
	}
}

func TestEditorBlankConsigneeDefaultsToBuyer(t *testing.T) {
	m := testEditor()
	m.draft.Client.Name = "Buyer Co"

	name := findField(m, "Consignee (Ship To)", "Name (blank = same as buyer)")
	state := findField(m, "Consignee (Ship To)", "State Name")
	name.set("Acme Warehouse")
	state.set("Kerala")

	// Clearing every field collapses the consignee back to nil.
	name.set("")
	state.set("")
	if m.draft.Consignee != nil {
		t.Fatalf("blank consignee must be nil, got %+v", m.draft.Consignee)
	}
	if got := m.draft.ShipTo(); got == nil || got.Name != "Buyer Co" {
		t.Errorf("ShipTo() = %+v, want the buyer's details", got)
	}
}
