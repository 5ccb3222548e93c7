package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/madhavasok/chatai/internal/chat"
	"github.com/madhavasok/chatai/pkg/models"
)

type viewMode int

const (
	dashboardView viewMode = iota
	sessionView
)

const maxRecentSessions = 6

type model struct {
	ctx          context.Context
	directory    *chat.Directory
	timeline     *chat.Timeline
	orchestrator *chat.Orchestrator

	currentMode   viewMode
	sessions      []models.Session
	sessionCursor int
	activeSession *models.Session

	input         textinput.Model
	viewport      viewport.Model // dashboard recent conversations
	leftViewport  viewport.Model // sessions sidebar in session view
	rightViewport viewport.Model // conversation pane in session view

	messageCache   map[string][]models.Message
	activeRequests map[string]context.CancelFunc

	spinner       *Spinner
	loading       bool
	querying      bool
	pendingPrompt string
	status        string

	ready  bool
	width  int
	height int
}

func initialModel(ctx context.Context, directory *chat.Directory, timeline *chat.Timeline, orchestrator *chat.Orchestrator) model {
	input := textinput.New()
	input.Placeholder = "Enter a prompt here..."
	input.CharLimit = 0
	input.Focus()

	return model{
		ctx:            ctx,
		directory:      directory,
		timeline:       timeline,
		orchestrator:   orchestrator,
		currentMode:    dashboardView,
		input:          input,
		messageCache:   make(map[string][]models.Message),
		activeRequests: make(map[string]context.CancelFunc),
		spinner:        NewSpinner(),
		loading:        true,
	}
}

func (m model) Init() tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	m.activeRequests["sessions"] = cancel
	return tea.Batch(
		tea.EnterAltScreen,
		textinput.Blink,
		listSessionsCmd(ctx, m.directory),
		tickCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewports()
		m.ready = true
		m.updateViewport()

	case TickMsg:
		if m.loading || m.querying {
			m.spinner.Next()
			m.updateViewport()
			return m, tickCmd()
		}
		return m, nil

	case SessionsLoadedMsg:
		m.cancelRequest("sessions")
		m.loading = false
		if msg.Err != nil {
			if !errors.Is(msg.Err, context.Canceled) {
				m.status = "Couldn't load sessions, will retry on next refresh"
			}
			m.sessions = nil
		} else {
			m.sessions = msg.Sessions
		}
		m.clampCursor()
		m.updateViewport()

	case MessagesLoadedMsg:
		m.cancelRequest("messages-" + msg.SessionID)
		if msg.Err != nil {
			if !errors.Is(msg.Err, context.Canceled) && m.activeSession != nil && m.activeSession.ID == msg.SessionID {
				m.status = "Couldn't load this conversation"
			}
		} else {
			m.messageCache[msg.SessionID] = msg.Messages
		}
		m.updateViewport()

	case SubmitFinishedMsg:
		m.querying = false
		if msg.Err != nil {
			m.status = submitErrorStatus(msg.Err)
			m.input.SetValue(m.pendingPrompt)
			m.updateViewport()
			return m, nil
		}
		m.status = ""
		m.pendingPrompt = ""
		if msg.Result.CreatedSession {
			cmds = append(cmds, m.openSessionByID(msg.Result.SessionID))
		} else if m.activeSession != nil && m.activeSession.ID == msg.Result.SessionID {
			m.messageCache[msg.Result.SessionID] = m.timeline.Messages()
		}
		// recency order changed, refresh the directory
		cmds = append(cmds, m.startSessionsLoad())
		m.updateViewport()
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelAllRequests()
			return m, tea.Quit

		case "esc":
			if m.currentMode == sessionView {
				m.cancelAllRequests()
				m.currentMode = dashboardView
				m.activeSession = nil
				m.sessionCursor = 0
				m.status = ""
				cmds = append(cmds, m.startSessionsLoad())
				m.updateViewport()
				return m, tea.Batch(cmds...)
			}
			m.cancelAllRequests()
			m.loading = false
			m.updateViewport()

		case "up":
			if m.sessionCursor > 0 {
				m.sessionCursor--
				m.updateViewport()
			}

		case "down":
			if m.sessionCursor < m.visibleSessionCount()-1 {
				m.sessionCursor++
				m.updateViewport()
			}

		case "enter":
			prompt := strings.TrimSpace(m.input.Value())
			if prompt != "" {
				if m.querying {
					return m, nil
				}
				sessionID := ""
				if m.currentMode == sessionView && m.activeSession != nil {
					sessionID = m.activeSession.ID
				}
				m.querying = true
				m.status = ""
				m.pendingPrompt = prompt
				m.input.SetValue("")
				m.updateViewport()
				return m, tea.Batch(
					submitCmd(m.ctx, m.orchestrator, prompt, sessionID),
					tickCmd(),
				)
			}
			// empty prompt: open the highlighted session
			if sessions := m.visibleSessions(); m.sessionCursor < len(sessions) {
				cmds = append(cmds, m.openSession(sessions[m.sessionCursor]))
				m.updateViewport()
				return m, tea.Batch(cmds...)
			}
		}
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	if m.currentMode == dashboardView {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		var leftCmd, rightCmd tea.Cmd
		m.leftViewport, leftCmd = m.leftViewport.Update(msg)
		m.rightViewport, rightCmd = m.rightViewport.Update(msg)
		cmds = append(cmds, leftCmd, rightCmd)
	}

	return m, tea.Batch(cmds...)
}

// startSessionsLoad kicks off a directory refresh, cancelling any previous one.
func (m *model) startSessionsLoad() tea.Cmd {
	m.cancelRequest("sessions")
	ctx, cancel := context.WithCancel(m.ctx)
	m.activeRequests["sessions"] = cancel
	m.loading = true
	return tea.Batch(listSessionsCmd(ctx, m.directory), tickCmd())
}

// openSession switches to the session view and loads its timeline. Cached
// messages render immediately; a fresh load replaces them when it lands.
func (m *model) openSession(session models.Session) tea.Cmd {
	s := session
	m.activeSession = &s
	m.currentMode = sessionView
	m.sessionCursor = m.indexOfSession(s.ID)
	m.status = ""

	key := "messages-" + s.ID
	m.cancelRequest(key)
	ctx, cancel := context.WithCancel(m.ctx)
	m.activeRequests[key] = cancel
	return tea.Batch(loadMessagesCmd(ctx, m.timeline, s.ID), tickCmd())
}

func (m *model) openSessionByID(sessionID string) tea.Cmd {
	for _, session := range m.sessions {
		if session.ID == sessionID {
			return m.openSession(session)
		}
	}
	return m.openSession(models.Session{
		ID:        sessionID,
		Title:     chat.DefaultSessionTitle,
		UpdatedAt: time.Now(),
	})
}

func (m *model) cancelRequest(key string) {
	if cancel, ok := m.activeRequests[key]; ok {
		cancel()
		delete(m.activeRequests, key)
	}
}

func (m *model) cancelAllRequests() {
	for key, cancel := range m.activeRequests {
		cancel()
		delete(m.activeRequests, key)
	}
}

func (m *model) visibleSessions() []models.Session {
	if m.currentMode == dashboardView && len(m.sessions) > maxRecentSessions {
		return m.sessions[:maxRecentSessions]
	}
	return m.sessions
}

func (m *model) visibleSessionCount() int {
	return len(m.visibleSessions())
}

func (m *model) clampCursor() {
	if n := m.visibleSessionCount(); m.sessionCursor >= n {
		m.sessionCursor = n - 1
	}
	if m.sessionCursor < 0 {
		m.sessionCursor = 0
	}
}

func (m *model) indexOfSession(sessionID string) int {
	for i, session := range m.sessions {
		if session.ID == sessionID {
			return i
		}
	}
	return 0
}

func (m *model) activeMessages() []models.Message {
	if m.activeSession == nil {
		return nil
	}
	if m.timeline.SessionID() == m.activeSession.ID {
		return m.timeline.Messages()
	}
	return m.messageCache[m.activeSession.ID]
}

func (m *model) resizeViewports() {
	viewHeight := m.height - 6
	if viewHeight < 3 {
		viewHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, viewHeight)
		leftWidth := m.width / 3
		m.leftViewport = viewport.New(leftWidth, viewHeight)
		m.rightViewport = viewport.New(m.width-leftWidth-1, viewHeight)
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = viewHeight
		leftWidth := m.width / 3
		m.leftViewport.Width = leftWidth
		m.leftViewport.Height = viewHeight
		m.rightViewport.Width = m.width - leftWidth - 1
		m.rightViewport.Height = viewHeight
	}
	m.input.Width = m.width - 4
}

func (m *model) updateViewport() {
	if !m.ready {
		return
	}
	if m.currentMode == dashboardView {
		m.viewport.SetContent(m.renderDashboard())
	} else {
		m.leftViewport.SetContent(m.renderSidebar())
		m.rightViewport.SetContent(m.renderConversation())
	}
}

func (m model) renderDashboard() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	subtitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	s.WriteString(titleStyle.Render("Welcome to ChatAI") + "\n")
	s.WriteString(subtitleStyle.Render("Ask me anything about health and wellness") + "\n\n")

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	header := "Recent conversations"
	if m.loading {
		header = loadingLine(m.spinner, header)
	} else {
		header = headerStyle.Render(header)
	}
	s.WriteString(header + "\n\n")

	sessions := m.visibleSessions()
	if len(sessions) == 0 && !m.loading {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		s.WriteString(emptyStyle.Render("No conversations yet. Ask your first question below."))
		return s.String()
	}

	now := time.Now()
	for i, session := range sessions {
		cursor := "  "
		if i == m.sessionCursor {
			cursor = "> "
		}

		style := lipgloss.NewStyle()
		if i == m.sessionCursor {
			style = style.Foreground(lipgloss.Color("212")).Bold(true)
		}

		line := fmt.Sprintf("%s%s · %s",
			cursor,
			truncate(session.Title, 40),
			chat.RelativeTimeShort(now, session.UpdatedAt))
		s.WriteString(style.Render(line) + "\n")
	}

	return s.String()
}

func (m model) renderSidebar() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	s.WriteString(headerStyle.Render("Conversations") + "\n")
	s.WriteString(strings.Repeat("─", max(m.leftViewport.Width-2, 10)) + "\n\n")

	now := time.Now()
	for i, session := range m.sessions {
		cursor := "  "
		if i == m.sessionCursor {
			cursor = "> "
		}

		style := lipgloss.NewStyle()
		switch {
		case m.activeSession != nil && session.ID == m.activeSession.ID:
			style = style.Foreground(lipgloss.Color("141")).Bold(true)
		case i == m.sessionCursor:
			style = style.Foreground(lipgloss.Color("212"))
		default:
			style = style.Foreground(lipgloss.Color("252"))
		}

		s.WriteString(style.Render(cursor+truncate(session.Title, m.leftViewport.Width-6)) + "\n")

		ageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.WriteString(ageStyle.Render("  "+chat.RelativeTime(now, session.UpdatedAt)) + "\n")

		if i < len(m.sessions)-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m model) renderConversation() string {
	var s strings.Builder

	messages := m.activeMessages()
	if len(messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		if m.querying {
			return loadingLine(m.spinner, "Thinking...")
		}
		return emptyStyle.Render("No messages in this conversation yet")
	}

	wrapWidth := m.rightViewport.Width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	youStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	botStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141"))
	bodyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	now := time.Now()
	for i, message := range messages {
		age := chat.RelativeTime(now, message.CreatedAt)

		s.WriteString(youStyle.Render("You") + metaStyle.Render(" · "+age) + "\n")
		for _, line := range wrapText(message.Question, wrapWidth) {
			s.WriteString(bodyStyle.Render(line) + "\n")
		}
		s.WriteString("\n")

		s.WriteString(botStyle.Render("ChatAI") + metaStyle.Render(" · "+age) + "\n")
		for _, line := range wrapText(message.Answer, wrapWidth) {
			s.WriteString(bodyStyle.Render(line) + "\n")
		}
		if len(message.Sources) > 0 {
			s.WriteString(metaStyle.Render(fmt.Sprintf("Sources: %d", len(message.Sources))) + "\n")
		}

		if i < len(messages)-1 {
			s.WriteString("\n")
		}
	}

	if m.querying {
		s.WriteString("\n" + loadingLine(m.spinner, "Thinking..."))
	}

	return s.String()
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	inputLine := m.renderInput()

	var body string
	if m.currentMode == dashboardView {
		body = m.viewport.View()
	} else {
		body = m.renderSplitView()
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, body, inputLine, footer)
}

func (m model) renderSplitView() string {
	leftStyle := lipgloss.NewStyle().
		Width(m.leftViewport.Width).
		Height(m.leftViewport.Height)

	rightStyle := lipgloss.NewStyle().
		Width(m.rightViewport.Width).
		Height(m.rightViewport.Height)

	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Height(m.leftViewport.Height)

	divider := strings.Builder{}
	for i := 0; i < m.leftViewport.Height; i++ {
		divider.WriteString("│")
		if i < m.leftViewport.Height-1 {
			divider.WriteString("\n")
		}
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.leftViewport.View()),
		dividerStyle.Render(divider.String()),
		rightStyle.Render(m.rightViewport.View()),
	)
}

func (m model) renderHeader() string {
	title := "ChatAI"
	if m.currentMode == sessionView && m.activeSession != nil {
		title = fmt.Sprintf("ChatAI - %s", m.activeSession.Title)
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))

	return style.Render(title)
}

func (m model) renderInput() string {
	if m.querying {
		return loadingLine(m.spinner, "Waiting for an answer...")
	}
	return m.input.View()
}

func (m model) renderFooter() string {
	info := "↑/↓: navigate • enter: send/open"
	if m.currentMode == sessionView {
		info += " • esc: back"
	}
	info += " • ctrl+c: quit"

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	footer := style.Render(info)

	if m.status != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
		footer += "  " + errStyle.Render(m.status)
	}

	return footer
}

func submitErrorStatus(err error) string {
	switch {
	case errors.Is(err, chat.ErrBusy):
		return "Still working on the previous question"
	case errors.Is(err, chat.ErrCreateFailed):
		return "Couldn't start a new conversation, please try again"
	case errors.Is(err, chat.ErrAskFailed):
		return "The answering service is unavailable, please retry"
	case errors.Is(err, chat.ErrPersistFailed):
		return "Got an answer but couldn't save it, please retry"
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) > width {
			lines = append(lines, currentLine)
			currentLine = word
		} else {
			currentLine += " " + word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

func truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		maxLen = 3
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run displays the TUI until the user quits.
func Run(ctx context.Context, directory *chat.Directory, timeline *chat.Timeline, orchestrator *chat.Orchestrator) error {
	p := tea.NewProgram(
		initialModel(ctx, directory, timeline, orchestrator),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
