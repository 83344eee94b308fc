// internal/tui/tui_test.go
package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/biostat/internal/pages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	catalog, err := pages.NewCatalog()
	require.NoError(t, err)
	m := initialModel(catalog)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestInitialModelListsInteractivePages(t *testing.T) {
	m := newTestModel(t)
	items := m.pageList.Items()
	require.Len(t, items, 4)
	assert.Equal(t, pages.NameNormal, items[0].(item).name)
	assert.Equal(t, pages.NameDiagnostic, items[3].(item).name)
	assert.Equal(t, viewPageSelector, m.state)
}

func TestViewBeforeResize(t *testing.T) {
	catalog, err := pages.NewCatalog()
	require.NoError(t, err)
	assert.Equal(t, "Initializing...", initialModel(catalog).View())
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEnterOpensSelectedPage(t *testing.T) {
	m := newTestModel(t)
	m.Update(key(tea.KeyEnter))

	require.Equal(t, viewExplorer, m.state)
	assert.Equal(t, pages.NameNormal, m.page.Name)
	assert.NotEmpty(t, m.charts)
	assert.Contains(t, m.View(), m.page.Header.Title)

	m.Update(key(tea.KeyEsc))
	assert.Equal(t, viewPageSelector, m.state)
	assert.Nil(t, m.session)
}

func TestArrowKeysMoveSliders(t *testing.T) {
	m := newTestModel(t)
	m.open(pages.NameCohen)
	require.Equal(t, viewExplorer, m.state)
	require.Len(t, m.controls, 3)

	m.Update(key(tea.KeyRight))
	assert.InDelta(t, 2.2, m.controls[0].Value, 1e-9)
	assert.Contains(t, m.View(), "d=2.20")

	m.Update(key(tea.KeyDown))
	assert.Equal(t, 1, m.focus)
	for i := 0; i < 20; i++ {
		m.Update(key(tea.KeyLeft))
	}
	assert.InDelta(t, 0.5, m.controls[1].Value, 1e-9, "slider stops at its minimum")

	m.Update(key(tea.KeyUp))
	m.Update(key(tea.KeyUp))
	assert.Equal(t, 0, m.focus)
	assert.NoError(t, m.err)
}

func TestUnknownPage(t *testing.T) {
	m := newTestModel(t)
	m.open("nope")
	assert.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")
}

func TestDiagnosticSummaryShowsAnnotations(t *testing.T) {
	m := newTestModel(t)
	m.open(pages.NameDiagnostic)
	view := m.View()
	assert.Contains(t, view, "AUC")
	assert.Contains(t, view, "test positive")
}

func TestSparkline(t *testing.T) {
	line := []rune(sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8, 0, 7))
	require.Len(t, line, 8)
	assert.Equal(t, '▁', line[0])
	assert.Equal(t, '█', line[7])
	for i := 1; i < len(line); i++ {
		assert.GreaterOrEqual(t, line[i], line[i-1])
	}

	assert.Equal(t, 20, utf8.RuneCountInString(sparkline([]float64{1, 2, 3}, 20, 0, 3)))
	assert.Equal(t, strings.Repeat("▁", 5), sparkline([]float64{2, 2}, 5, 2, 2))
	assert.Empty(t, sparkline(nil, 5, 0, 1))
}

func TestSlider(t *testing.T) {
	m := newTestModel(t)
	m.open(pages.NameCohen)
	c := m.controls[0]
	c.Value = c.Min
	assert.True(t, strings.HasPrefix(slider(c, 10), "[●"))
	c.Value = c.Max
	assert.True(t, strings.HasSuffix(slider(c, 10), "●]"))
}
