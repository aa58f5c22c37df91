package gamelog

import (
	"os"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/sample_log.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	log, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantFactions := []string{"taklons", "terrans"}
	if len(log.Factions) != len(wantFactions) {
		t.Fatalf("factions = %v, want %v", log.Factions, wantFactions)
	}
	for i, faction := range wantFactions {
		if log.Factions[i] != faction {
			t.Errorf("factions[%d] = %q, want %q", i, log.Factions[i], faction)
		}
	}

	if len(log.Items) != 9 {
		t.Fatalf("expected 9 log items, got %d", len(log.Items))
	}

	// Rows are newest-first in the markup; Items must be in play order.
	if got := log.Items[0].Text; got != "taklons advance nav" {
		t.Errorf("first item = %q, want the oldest row", got)
	}
	if got := log.Items[len(log.Items)-1].Text; got != "final scoring - terrans" {
		t.Errorf("last item = %q, want the newest row", got)
	}

	// A single-cell row has no events and no faction.
	var marker *LogItem
	for _, item := range log.Items {
		if item.Text == "round 2 begins" {
			marker = item
		}
	}
	if marker == nil {
		t.Fatal("round marker row missing")
	}
	if marker.Faction != "" || marker.Events != nil {
		t.Errorf("round marker should have no faction or events, got %+v", marker)
	}

	// A three-cell row carries zipped action/state-change events.
	first := log.Items[0]
	if first.Faction != "taklons" {
		t.Errorf("first item faction = %q, want taklons", first.Faction)
	}
	if len(first.Events) != 1 {
		t.Fatalf("first item events = %d, want 1", len(first.Events))
	}
	if first.Events[0].Action != "nav" {
		t.Errorf("first event action = %q, want nav", first.Events[0].Action)
	}
	if len(first.Events[0].Changes) != 2 {
		t.Errorf("first event changes = %d, want 2", len(first.Events[0].Changes))
	}
}

func TestParseMissingContainer(t *testing.T) {
	html := `<html><body><p>nothing here</p></body></html>`
	if _, err := Parse(strings.NewReader(html)); err == nil {
		t.Error("expected error when the log container is missing")
	}
}

func TestParseEmptyTable(t *testing.T) {
	html := `<html><body><div class="col-12 order-last mt-4"><table></table></div></body></html>`
	if _, err := Parse(strings.NewReader(html)); err == nil {
		t.Error("expected error when the log table has no rows")
	}
}

func TestParseBadToken(t *testing.T) {
	html := `<html><body><div class="col-12 order-last mt-4"><table><tbody>
		<tr><td>terrans build</td><td><div>build</div></td><td><div>banana</div></td></tr>
	</tbody></table></div></body></html>`
	_, err := Parse(strings.NewReader(html))
	if err == nil {
		t.Fatal("expected error for malformed state change token")
	}
	if !strings.Contains(err.Error(), "banana") {
		t.Errorf("error should name the bad token, got: %v", err)
	}
}
