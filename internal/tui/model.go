package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/helpchat/internal/api"
	"github.com/diogo/helpchat/internal/models"
	"github.com/diogo/helpchat/internal/render"
)

// Greeting shown as the first transcript entry.
const greeting = "Hello! I'm the IT helpdesk assistant. Describe your problem and I'll look for a fix."

// eventsErrorNote is the fixed note appended when the event-stream
// connection fails; the connection is then closed like a normal end.
const eventsErrorNote = "[connection lost, please try again]"

// sessionState is the explicit exchange lifecycle. loading, as exposed to
// the rendering layer, is simply state != stateIdle.
type sessionState int

const (
	stateIdle      sessionState = iota
	stateAwaiting               // request issued, nothing received yet
	stateStreaming              // fragments arriving incrementally
	stateRevealing              // full reply revealed character by character
)

// streamEvent carries one delivery from the exchange goroutine into the
// bubbletea loop.
type streamEvent struct {
	fragment string
	done     bool
	err      error
}

// Messages for the TUI
type (
	animationTickMsg time.Time
	revealTickMsg    struct{}
	fragmentMsg      struct{ text string }
	exchangeDoneMsg  struct{}
	errMsg           struct{ err error }
)

// Model represents the chat view state
type Model struct {
	client    api.ClientInterface
	session   *api.ChatSession
	serverURL string

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	transcript     *models.Transcript
	state          sessionState
	ready          bool
	animationFrame int

	// In-flight exchange. eventsDone is closed when the view abandons the
	// exchange so the producing goroutine never blocks on a full channel.
	events     chan streamEvent
	eventsDone chan struct{}

	// Transcript indexes holding error notes, rendered without markdown.
	errorAt map[int]bool

	// Character reveal (query delivery)
	revealRunes []rune
	revealPos   int
	revealDelay time.Duration

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat view bound to client.
func NewChatModel(client api.ClientInterface, revealDelay time.Duration) Model {
	ta := textarea.New()
	ta.Placeholder = "Describe your IT problem..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	if revealDelay <= 0 {
		revealDelay = 12 * time.Millisecond
	}

	return Model{
		client:      client,
		session:     client.StartChat(),
		serverURL:   client.BaseURL(),
		textarea:    ta,
		spinner:     s,
		transcript:  models.NewTranscript(models.Message{Role: models.RoleAssistant, Content: greeting}),
		revealDelay: revealDelay,
		errorAt:     make(map[int]bool),
	}
}

// Loading reports whether an exchange is in flight.
func (m Model) Loading() bool {
	return m.state != stateIdle
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

func (m Model) revealTick() tea.Cmd {
	return tea.Tick(m.revealDelay, func(time.Time) tea.Msg {
		return revealTickMsg{}
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		inputHeight := 5
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.session.Close()
			m.abandonExchange()
			return m, tea.Quit

		case "esc":
			if m.Loading() {
				// Abandon the in-flight exchange.
				m.session.Close()
				m.abandonExchange()
				m.state = stateIdle
			} else {
				m.session.Close()
				return m, tea.Quit
			}

		case "enter":
			if !m.Loading() {
				input := strings.TrimSpace(m.textarea.Value())
				if input == "" {
					// Whitespace-only submit is a no-op.
					break
				}
				if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
					m.session.Close()
					m.abandonExchange()
					return m, tea.Quit
				}
				return m.submit(input)
			}
		}

	case fragmentMsg:
		if m.session.Streaming() {
			m.state = stateStreaming
			m.transcript.AppendAssistant(msg.text)
			m.updateViewport()
			m.viewport.GotoBottom()
			cmds = append(cmds, waitForEvent(m.events))
		} else {
			// Full reply in one shot: reveal it character by character.
			m.state = stateRevealing
			m.revealRunes = []rune(msg.text)
			m.revealPos = 0
			m.transcript.AppendAssistant("")
			cmds = append(cmds, waitForEvent(m.events), m.revealTick())
		}

	case revealTickMsg:
		if m.state == stateRevealing {
			if m.revealPos < len(m.revealRunes) {
				m.revealPos++
				m.transcript.SetLastAssistant(string(m.revealRunes[:m.revealPos]))
				m.updateViewport()
				m.viewport.GotoBottom()
			}
			if m.revealPos < len(m.revealRunes) {
				cmds = append(cmds, m.revealTick())
			} else {
				m.state = stateIdle
				m.abandonExchange()
			}
		}

	case exchangeDoneMsg:
		// The reveal keeps running after the request itself finished.
		if m.state != stateRevealing {
			m.state = stateIdle
			m.abandonExchange()
		}

	case errMsg:
		m.transcript.Append(models.RoleAssistant, m.errorNote(msg.err))
		m.errorAt[m.transcript.Len()-1] = true
		m.state = stateIdle
		m.abandonExchange()
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.Loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.Loading() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to the textarea to prevent escape sequence leaks
	if !m.Loading() {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit appends the user message, clears the input and issues exactly one
// request for this exchange.
func (m Model) submit(input string) (tea.Model, tea.Cmd) {
	m.transcript.Append(models.RoleUser, input)
	m.updateViewport()
	m.viewport.GotoBottom()

	m.state = stateAwaiting
	m.animationFrame = 0
	m.textarea.Reset()

	m.abandonExchange()
	ch := make(chan streamEvent, 16)
	done := make(chan struct{})
	m.events = ch
	m.eventsDone = done

	session := m.session
	go func() {
		err := session.Send(context.Background(), input, func(fragment string) error {
			if !pushEvent(ch, done, streamEvent{fragment: fragment}) {
				return context.Canceled
			}
			return nil
		})
		pushEvent(ch, done, streamEvent{done: true, err: err})
		close(ch)
	}()

	return m, tea.Batch(
		waitForEvent(ch),
		m.spinner.Tick,
		animationTick(),
	)
}

// pushEvent delivers ev into the exchange channel unless the view has
// abandoned the exchange. Reports whether the event was delivered.
func pushEvent(ch chan<- streamEvent, done <-chan struct{}, ev streamEvent) bool {
	select {
	case ch <- ev:
		return true
	case <-done:
		return false
	}
}

// abandonExchange detaches the view from the in-flight exchange and releases
// its producing goroutine.
func (m *Model) abandonExchange() {
	if m.eventsDone != nil {
		close(m.eventsDone)
		m.eventsDone = nil
	}
	m.events = nil
}

// waitForEvent bridges the exchange goroutine into the bubbletea loop,
// one event per command.
func waitForEvent(ch chan streamEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		if ev.err != nil {
			return errMsg{err: ev.err}
		}
		if ev.done {
			return exchangeDoneMsg{}
		}
		return fragmentMsg{text: ev.fragment}
	}
}

// errorNote converts an exchange failure into the single assistant message
// shown in the transcript.
func (m Model) errorNote(err error) string {
	if m.session.Delivery() == api.DeliveryEvents {
		return eventsErrorNote
	}
	return fmt.Sprintf("Sorry, I couldn't reach the helpdesk backend: %v", err)
}

// View renders the chat view
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	headerContent := lipgloss.JoinHorizontal(
		lipgloss.Center,
		titleStyle.Render("✦ IT Helpdesk"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.serverURL),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(string(m.session.Delivery())),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	var messagesContent string
	if m.transcript.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	var inputContent string
	if m.state == stateAwaiting {
		inputContent = m.renderLoadingAnimation()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✦")
	title := welcomeTitleStyle.Width(width).Render("IT Helpdesk Chat")
	subtitle := welcomeStyle.Width(width).Render("Describe your problem to get started")

	content := lipgloss.JoinVertical(lipgloss.Center, "", icon, "", title, "", subtitle, "")

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders the animated waiting indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)
		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots += lipgloss.NewStyle().Foreground(dotColor).Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Looking into it ")

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, dots)
}

func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.transcript.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.Role == models.RoleUser {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ Helpdesk")
			content.WriteString(label + "\n")

			var rendered string
			if m.errorAt[i] {
				rendered = errorTextStyle.Render(msg.Content)
			} else {
				var err error
				rendered, err = render.MarkdownWithWidth(msg.Content, bubbleWidth-4)
				if err != nil {
					rendered = msg.Content
				}
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// RunChat starts the interactive chat view
func RunChat(client api.ClientInterface, revealDelay time.Duration) error {
	m := NewChatModel(client, revealDelay)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
