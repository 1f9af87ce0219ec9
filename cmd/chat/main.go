package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"llamachat-backend/internal/clipboard"
	"llamachat-backend/internal/models"
	"llamachat-backend/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
)

var (
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	statusStyle    = lipgloss.NewStyle().Faint(true)
	promptStyle    = lipgloss.NewStyle().Bold(true)
	overlayStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type sendDoneMsg struct{}

type chatModel struct {
	sess       *session.Session
	input      string
	attachMode bool // input line is a file path, not a message
	loading    bool
	status     string
	manualText string // manual-copy overlay content; shown when non-empty
	width      int
	quitting   bool
}

func (m chatModel) Init() tea.Cmd {
	return nil
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case sendDoneMsg:
		m.loading = false
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if m.manualText != "" {
			if msg.String() == "esc" || msg.String() == "enter" {
				m.manualText = ""
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if m.attachMode {
				m.attachMode = false
				m.status = m.attachFile(strings.TrimSpace(m.input))
				m.input = ""
				return m, nil
			}
			if m.loading {
				return m, nil
			}
			text := m.input
			m.input = ""
			if strings.TrimSpace(text) == "" && m.sess.Attachment() == nil {
				return m, nil
			}
			m.loading = true
			m.status = "Waiting for reply..."
			return m, func() tea.Msg {
				m.sess.Send(context.Background(), text)
				return sendDoneMsg{}
			}

		case "ctrl+f":
			m.attachMode = !m.attachMode
			m.input = ""
			if m.attachMode {
				m.status = "Enter path of file to attach"
			} else {
				m.status = ""
			}
			return m, nil

		case "ctrl+y":
			var manual string
			chain := clipboard.NewChain(os.Stderr, func(t string) { manual = t })
			switch m.sess.CopyTranscript(chain) {
			case clipboard.MethodSystem:
				m.status = "Copied conversation to clipboard"
			case clipboard.MethodOSC52:
				m.status = "Copied conversation via terminal escape"
			case clipboard.MethodManual:
				m.manualText = manual
				m.status = "Clipboard unavailable, copy manually"
			}
			return m, nil

		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
			return m, nil

		default:
			if msg.Type == tea.KeyRunes {
				m.input += string(msg.Runes)
			} else if msg.Type == tea.KeySpace {
				m.input += " "
			}
			return m, nil
		}
	}
	return m, nil
}

// attachFile loads and validates a file from disk, returning a status line.
func (m *chatModel) attachFile(path string) string {
	if path == "" {
		return "No file given"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("Cannot read %s: %v", path, err)
	}
	name := filepath.Base(path)
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if err := m.sess.AttachFile(name, mimeType, data); err != nil {
		return fmt.Sprintf("Cannot attach %s: %v", name, err)
	}
	return fmt.Sprintf("Attached %s (sent with next message)", name)
}

func (m chatModel) View() string {
	if m.quitting {
		return ""
	}

	if m.manualText != "" {
		return overlayStyle.Render(
			"Copy the conversation below, then press esc:\n\n"+m.manualText) + "\n"
	}

	var b strings.Builder
	for _, msg := range m.sess.Messages() {
		switch msg.Role {
		case models.RoleUser:
			b.WriteString(userStyle.Render("You: ") + msg.Content + "\n\n")
		default:
			b.WriteString(assistantStyle.Render("Assistant: ") + msg.Content + "\n\n")
		}
	}

	if m.sess.State() == session.Uninitialized {
		b.WriteString(statusStyle.Render("No conversation available; messages cannot be sent.") + "\n")
	}

	prompt := "> "
	if m.attachMode {
		prompt = "attach> "
	}
	if m.loading {
		b.WriteString(statusStyle.Render("Assistant is typing...") + "\n")
	} else {
		b.WriteString(promptStyle.Render(prompt) + m.input + "\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(statusStyle.Render("enter: send | ctrl+f: attach | ctrl+y: copy | esc: quit") + "\n")
	return b.String()
}

func main() {
	// .env is a dev convenience, same as the server side.
	_ = godotenv.Load()

	serverURL := os.Getenv("CHAT_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}
	passphrase := os.Getenv("CHAT_PASSPHRASE")

	client := session.NewClient(serverURL)
	ctx := context.Background()

	if err := client.Authenticate(ctx, passphrase); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to authenticate with %s: %v\n", serverURL, err)
		os.Exit(1)
	}

	sess := session.NewSession(client)
	if err := sess.Start(ctx); err != nil {
		// Degraded: the UI still runs, but every send is refused.
		fmt.Fprintf(os.Stderr, "Warning: could not create conversation: %v\n", err)
	}

	p := tea.NewProgram(chatModel{sess: sess})
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running chat UI: %v\n", err)
		os.Exit(1)
	}
}
