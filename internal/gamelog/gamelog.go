package gamelog

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LogContainerSelector locates the advanced log container on a rendered
// game page.
const LogContainerSelector = "div.col-12.order-last.mt-4"

// Event is one sub-action of a log row together with the state changes it
// caused.
type Event struct {
	Action  string        `json:"action"`
	Changes []StateChange `json:"changes"`
}

// LogItem is one row of the advanced log.
type LogItem struct {
	Text    string  `json:"text"`
	Faction string  `json:"faction,omitempty"`
	Events  []Event `json:"events,omitempty"`
}

// GameLog holds the full advanced log in play order, plus the set of
// factions that appear in it.
type GameLog struct {
	Factions []string   `json:"factions"`
	Items    []*LogItem `json:"items"`
}

// Parse reads a rendered game page and extracts the advanced log.
func Parse(r io.Reader) (*GameLog, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	container := doc.Find(LogContainerSelector).First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("advanced log container %q not found", LogContainerSelector)
	}

	rows := container.Find("table tbody tr")
	if rows.Length() == 0 {
		// Some renders omit tbody.
		rows = container.Find("table tr")
	}
	if rows.Length() == 0 {
		return nil, fmt.Errorf("advanced log table has no rows")
	}

	// Rows are rendered newest-first; reverse into play order.
	items := make([]*LogItem, 0, rows.Length())
	var parseErr error
	rows.Each(func(i int, row *goquery.Selection) {
		if parseErr != nil {
			return
		}
		item, err := parseItem(row)
		if err != nil {
			parseErr = fmt.Errorf("log row %d: %w", i, err)
			return
		}
		items = append(items, item)
	})
	if parseErr != nil {
		return nil, parseErr
	}
	for left, right := 0, len(items)-1; left < right; left, right = left+1, right-1 {
		items[left], items[right] = items[right], items[left]
	}

	return &GameLog{Factions: collectFactions(items), Items: items}, nil
}

// parseItem extracts one log row. Rows with three cells carry sub-actions
// and their state changes; single-cell rows are descriptions only.
func parseItem(row *goquery.Selection) (*LogItem, error) {
	cells := row.Find("td")
	if cells.Length() == 0 {
		return nil, fmt.Errorf("row has no cells")
	}

	text := strings.TrimSpace(cells.Eq(0).Text())
	item := &LogItem{
		Text:    text,
		Faction: FactionIn(text),
	}

	if cells.Length() >= 3 {
		events, err := parseEvents(cells.Eq(1), cells.Eq(2))
		if err != nil {
			return nil, err
		}
		item.Events = events
	}

	return item, nil
}

// parseEvents zips the sub-action cell with the state-change cell. The two
// cells hold parallel lists of divs, one entry per sub-action.
func parseEvents(actionsCell, changesCell *goquery.Selection) ([]Event, error) {
	actions := cellEntries(actionsCell)
	changes := cellEntries(changesCell)

	count := len(actions)
	if len(changes) < count {
		count = len(changes)
	}

	events := make([]Event, 0, count)
	for i := 0; i < count; i++ {
		changeList, err := ParseStateChangeList(changes[i])
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", actions[i], err)
		}
		events = append(events, Event{
			Action:  strings.TrimSpace(actions[i]),
			Changes: changeList,
		})
	}
	return events, nil
}

// cellEntries returns the text of each div inside a cell, or the cell's own
// text when it has no divs.
func cellEntries(cell *goquery.Selection) []string {
	divs := cell.Find("div")
	if divs.Length() == 0 {
		return []string{cell.Text()}
	}
	entries := make([]string, 0, divs.Length())
	divs.Each(func(_ int, div *goquery.Selection) {
		entries = append(entries, div.Text())
	})
	return entries
}

func collectFactions(items []*LogItem) []string {
	seen := make(map[string]bool)
	factions := make([]string, 0, 4)
	for _, item := range items {
		if item.Faction != "" && !seen[item.Faction] {
			seen[item.Faction] = true
			factions = append(factions, item.Faction)
		}
	}
	sort.Strings(factions)
	return factions
}
