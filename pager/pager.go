// Package pager is an interactive, resizable reader for laid-out documents.
// Every terminal resize re-runs the justification at the new width.
package pager

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ByLCY/quill/keymap"
	"github.com/ByLCY/quill/layout"
	"github.com/ByLCY/quill/markdown"
	"github.com/ByLCY/quill/renderer"
	ansirenderer "github.com/ByLCY/quill/renderer/ansi"
)

// statusHeight 是底部状态栏占用的行数。
const statusHeight = 1

// Options configures a pager Model.
type Options struct {
	Theme        renderer.Theme
	BlockSpacing int
	// Keys maps action names ("down", "top", ...) to key sequences.
	Keys map[string][]string
	// Path is watched for changes when Load is set.
	Path string
	Load func() (*markdown.Document, error)
}

// Model implements tea.Model.
type Model struct {
	doc      *markdown.Document
	opts     Options
	bindings *keymap.Bindings[Action]
	pending  []keymap.Key

	viewport viewport.Model
	ansi     *ansirenderer.Renderer
	status   lipgloss.Style
	ready    bool
	err      error
}

var _ tea.Model = Model{}

// New validates the key bindings and returns a model awaiting its first size.
func New(doc *markdown.Document, opts Options) (Model, error) {
	if doc == nil {
		return Model{}, fmt.Errorf("pager: document is nil")
	}
	if opts.BlockSpacing < 0 {
		return Model{}, fmt.Errorf("pager: block spacing must be >= 0, got %d", opts.BlockSpacing)
	}
	bindings, err := BuildBindings(opts.Keys)
	if err != nil {
		return Model{}, err
	}
	return Model{
		doc:      doc,
		opts:     opts,
		bindings: bindings,
		viewport: viewport.New(0, 0),
		ansi:     ansirenderer.NewRenderer(opts.Theme, nil),
		status:   lipgloss.NewStyle().Faint(true),
	}, nil
}

func (m Model) Init() tea.Cmd {
	if m.opts.Path != "" && m.opts.Load != nil {
		return Watch(m.opts.Path)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-statusHeight, 1)
		m.ready = true
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case FileChangedMsg:
		m.reload()
		return m, Watch(msg.Path)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key, err := keymap.ParseKey(msg.String())
	if err != nil {
		m.pending = nil
		return m, nil
	}
	m.pending = append(m.pending, key)
	res := m.bindings.Resolve(m.pending)
	if res.Status == keymap.NoBinding && len(m.pending) > 1 {
		// 组合键中断时，把最后一个键当作新的开始
		m.pending = []keymap.Key{key}
		res = m.bindings.Resolve(m.pending)
	}
	switch res.Status {
	case keymap.AwaitingNextKey:
		return m, nil
	case keymap.NoBinding:
		m.pending = nil
		return m, nil
	}
	m.pending = nil
	return m.apply(res.Output)
}

func (m Model) apply(action Action) (tea.Model, tea.Cmd) {
	vp := &m.viewport
	switch action {
	case ActionDown:
		vp.SetYOffset(vp.YOffset + 1)
	case ActionUp:
		vp.SetYOffset(vp.YOffset - 1)
	case ActionHalfDown:
		vp.SetYOffset(vp.YOffset + max(vp.Height/2, 1))
	case ActionHalfUp:
		vp.SetYOffset(vp.YOffset - max(vp.Height/2, 1))
	case ActionPageDown:
		vp.SetYOffset(vp.YOffset + vp.Height)
	case ActionPageUp:
		vp.SetYOffset(vp.YOffset - vp.Height)
	case ActionTop:
		vp.GotoTop()
	case ActionBottom:
		vp.GotoBottom()
	case ActionReload:
		m.reload()
	case ActionQuit:
		return m, tea.Quit
	}
	return m, nil
}

// reload 重新读取文档；失败时保留旧内容并在状态栏显示错误。
func (m *Model) reload() {
	if m.opts.Load == nil {
		return
	}
	doc, err := m.opts.Load()
	if err != nil {
		log.Printf("pager: reload failed: %v", err)
		m.err = err
		return
	}
	m.doc = doc
	m.err = nil
	m.relayout()
}

func (m *Model) relayout() {
	if !m.ready || m.viewport.Width < 1 {
		return
	}
	res, err := layout.Build(m.doc, layout.BuildOptions{
		Width:        m.viewport.Width,
		BlockSpacing: m.opts.BlockSpacing,
	})
	if err != nil {
		m.err = err
		return
	}
	content, err := m.ansi.RenderString(res)
	if err != nil {
		m.err = err
		return
	}
	offset := m.viewport.YOffset
	m.viewport.SetContent(strings.TrimSuffix(content, "\n"))
	m.viewport.SetYOffset(offset)
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.viewport.View() + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	var text string
	switch {
	case m.err != nil:
		text = "error: " + m.err.Error()
	case len(m.pending) > 0:
		text = keymap.FormatSequence(m.pending)
	default:
		text = fmt.Sprintf("%d/%d  %3.f%%", m.viewport.YOffset+1, m.viewport.TotalLineCount(), m.viewport.ScrollPercent()*100)
	}
	return m.status.Render(ansi.Truncate(text, m.viewport.Width, "…"))
}

// Offset returns the index of the first visible line.
func (m Model) Offset() int { return m.viewport.YOffset }

// Pending returns the keys of an unfinished chord.
func (m Model) Pending() []keymap.Key { return m.pending }

// Err returns the last layout or reload error.
func (m Model) Err() error { return m.err }
