package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"termlab/internal/buildinfo"
	"termlab/scenario"
	"termlab/shell"
)

// reloadMsg tells the model the scenario file changed on disk.
type reloadMsg struct{}

// model is the terminal window: a viewport over the shell transcript, a
// textinput acting as the line editor, and a status bar. All shell
// semantics live in the processor; the model only moves text around.
type model struct {
	proc  *shell.Processor
	input textinput.Model
	vp    viewport.Model

	scenarioPath string
	sessionID    string

	transcript strings.Builder
	discovered []string

	width, height int
	ready         bool
}

func newModel(sc *scenario.Scenario, path string) (*model, error) {
	m := &model{
		scenarioPath: path,
		sessionID:    uuid.NewString(),
	}
	if err := m.boot(sc); err != nil {
		return nil, err
	}
	return m, nil
}

// boot builds a fresh processor from sc and resets the transcript. It runs
// at startup and again on every watch reload; session state never survives
// a reload.
func (m *model) boot(sc *scenario.Scenario) error {
	cfg, _, err := sc.Build()
	if err != nil {
		return err
	}
	cfg.Output = m.printStyled
	cfg.OnClear = m.clearTranscript
	cfg.OnDiscovery = m.noteDiscovery

	proc, err := shell.New(cfg)
	if err != nil {
		return err
	}
	m.proc = proc

	m.transcript.Reset()
	m.transcript.WriteString(renderBriefing(sc.Briefing))

	ti := textinput.New()
	ti.Prompt = m.proc.Prompt()
	ti.PromptStyle = promptStyle
	ti.Focus()
	if m.width > 0 {
		ti.Width = inputWidth(m.width, ti.Prompt)
	}
	m.input = ti

	m.refresh()
	return nil
}

func renderBriefing(briefing string) string {
	if briefing == "" {
		return ""
	}
	out, err := glamour.Render(briefing, "dark")
	if err != nil {
		return briefing + "\n"
	}
	return out
}

// printStyled is the shell's output sink.
func (m *model) printStyled(text string, style shell.Style) {
	m.transcript.WriteString(styleFor(style).Render(text))
	m.refresh()
}

func (m *model) notice(text string) {
	m.transcript.WriteString(noticeStyle.Render(text) + "\n")
	m.refresh()
}

func (m *model) clearTranscript() {
	m.transcript.Reset()
	m.refresh()
}

func (m *model) noteDiscovery(token string) {
	m.discovered = append(m.discovered, token)
}

// refresh pushes the transcript into the viewport, pinned to the bottom.
func (m *model) refresh() {
	if !m.ready {
		return
	}
	m.vp.SetContent(m.transcript.String())
	m.vp.GotoBottom()
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vpHeight := msg.Height - 2
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.input.Width = inputWidth(msg.Width, m.input.Prompt)
		m.refresh()
		return m, nil

	case reloadMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit
		case "ctrl+l":
			m.clearTranscript()
			return m, nil
		case "enter":
			m.proc.Execute(context.Background(), m.input.Value())
			m.input.SetValue("")
			m.input.Prompt = m.proc.Prompt()
			m.input.Width = inputWidth(m.width, m.input.Prompt)
			m.refresh()
			return m, nil
		case "tab":
			m.complete()
			return m, nil
		case "up":
			if line, ok := m.proc.HistoryPrevious(); ok {
				m.input.SetValue(line)
				m.input.CursorEnd()
			}
			return m, nil
		case "down":
			if line, ok := m.proc.HistoryNext(); ok {
				m.input.SetValue(line)
				m.input.CursorEnd()
			}
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// complete maps the textinput's rune cursor onto the shell's byte offsets,
// asks for a completion and splices the result back in.
func (m *model) complete() {
	value := m.input.Value()
	runes := []rune(value)
	pos := m.input.Position()
	if pos > len(runes) {
		pos = len(runes)
	}

	res := m.proc.Complete(context.Background(), value, len(string(runes[:pos])))
	if res == nil {
		return
	}

	m.input.SetValue(res.Line)
	m.input.SetCursor(utf8.RuneCountInString(res.Line[:res.Cursor]))
	if len(res.Suggestions) > 0 {
		m.printStyled(suggestionGrid(res.Suggestions, m.contentWidth()), shell.StylePlain)
	}
}

func (m *model) reload() {
	sc, err := scenario.Load(m.scenarioPath)
	if err != nil {
		m.printStyled("reload failed: "+err.Error()+"\n", shell.StyleError)
		return
	}
	if err := m.boot(sc); err != nil {
		m.printStyled("reload failed: "+err.Error()+"\n", shell.StyleError)
		return
	}
	m.notice("scenario reloaded: " + m.scenarioPath)
}

func (m *model) View() string {
	if !m.ready {
		return "starting..."
	}
	return m.vp.View() + "\n" + m.input.View() + "\n" + m.statusBar()
}

func (m *model) statusBar() string {
	name := "demo scenario"
	if m.scenarioPath != "" {
		name = filepath.Base(m.scenarioPath)
	}
	left := fmt.Sprintf("termlab %s  %s  session %.8s", buildinfo.Short(), name, m.sessionID)
	right := fmt.Sprintf("markers %d", len(m.discovered))

	gap := m.width - runewidth.StringWidth(left) - runewidth.StringWidth(right) - 2
	if gap < 1 {
		gap = 1
	}
	return statusStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *model) contentWidth() int {
	if m.width > 0 {
		return m.width
	}
	return 80
}

func inputWidth(total int, prompt string) int {
	w := total - runewidth.StringWidth(prompt) - 2
	if w < 10 {
		w = 10
	}
	return w
}

// suggestionGrid lays candidates out in even columns, the way a shell
// prints an ambiguous completion.
func suggestionGrid(items []string, width int) string {
	colw := 0
	for _, it := range items {
		if w := runewidth.StringWidth(it); w > colw {
			colw = w
		}
	}
	colw += 2
	cols := width / colw
	if cols < 1 {
		cols = 1
	}

	var b strings.Builder
	for i, it := range items {
		b.WriteString(runewidth.FillRight(it, colw))
		if (i+1)%cols == 0 || i == len(items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// watchScenario watches path's directory (editors typically replace files
// rather than write them in place) and nudges the program when the
// scenario file changes. Events are debounced so one save is one reload.
func watchScenario(path string, prog *tea.Program) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	base := filepath.Base(path)

	go func() {
		var pending *time.Timer
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(150*time.Millisecond, func() {
					prog.Send(reloadMsg{})
				})
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return func() { w.Close() }, nil
}
