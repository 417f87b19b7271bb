package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/infinite-realms/engine/pkg/state"
	"github.com/infinite-realms/engine/pkg/story"
)

const PlaceHolderText = "What do you do?"

var classes = []string{"Warrior", "Mage", "Rogue"}

// sceneEntry is one displayed exchange: the action the player typed and
// the segment that answered it.
type sceneEntry struct {
	action    string
	title     string
	narrative string
	choices   []string
	fallback  bool
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config        *ConsoleConfig
	client        *http.Client
	gameState     *state.GameState
	sceneViewport viewport.Model
	metaViewport  viewport.Model
	textarea      textarea.Model
	scenes        []sceneEntry
	ready         bool
	width         int
	height        int
	err           error
	loading       bool
	notice        string

	// Character creation state
	showCreateModal bool
	nameInput       textarea.Model
	selectedClass   int
	creating        bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type actionResponseMsg struct {
	response *ActionResponse
	err      error
}

type gameStateCreatedMsg struct {
	gameState *state.GameState
	err       error
}

type gameLoadedMsg struct {
	gameState *state.GameState
	segment   *story.Segment
	err       error
}

type mutationMsg struct {
	verb     string
	response *MutationResponse
	err      error
}

type savedMsg struct {
	err error
}

type progressTickMsg struct{}

var (
	scenePanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	sceneTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narrativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117")) // light blue

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 512
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	name := textarea.New()
	name.Placeholder = "Your name"
	name.Prompt = ""
	name.CharLimit = 64
	name.SetWidth(40)
	name.SetHeight(1)
	name.ShowLineNumbers = false
	name.Focus()

	sceneVp := viewport.New(50, 20)
	sceneVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:          cfg,
		client:          client,
		textarea:        ta,
		nameInput:       name,
		sceneViewport:   sceneVp,
		metaViewport:    metaVp,
		ready:           false,
		showCreateModal: true,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

// writeSceneContent rebuilds the scene panel from the scene history at
// the current viewport width.
func (m *ConsoleUI) writeSceneContent() {
	sceneWidth := m.sceneViewport.Width - 6

	var content strings.Builder
	content.WriteString(titleStyle.Render("INFINITE REALMS") + "\n\n")
	content.WriteString("Type your actions below to shape the story.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(sceneWidth-6, 1))) + "\n\n")

	for _, s := range m.scenes {
		if s.action != "" {
			content.WriteString(userStyle.Render("> "+s.action) + "\n\n")
		}
		if s.title != "" {
			content.WriteString(sceneTitleStyle.Render(s.title) + "\n")
		}
		content.WriteString(narrativeStyle.Render(wordwrap.String(s.narrative, max(sceneWidth-2, 10))) + "\n")
		if s.fallback {
			content.WriteString(loadingStyle.Render("(the story falters for a moment)") + "\n")
		}
		if len(s.choices) > 0 {
			content.WriteString("\n")
			for i, c := range s.choices {
				content.WriteString(choiceStyle.Render(fmt.Sprintf("  %d. %s", i+1, c)) + "\n")
			}
		}
		content.WriteString("\n")
	}

	if m.notice != "" {
		content.WriteString(loadingStyle.Render(m.notice) + "\n\n")
	}
	if m.err != nil {
		content.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}
	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.sceneViewport.SetContent(content.String())
	m.sceneViewport.GotoBottom()
}

func writeMetadata(gs *state.GameState) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(gs.CharacterName)) + "\n")
	content.WriteString(gs.CharacterClass + "\n\n")

	content.WriteString(fmt.Sprintf("Health: %d/%d\n", gs.Health, state.MaxHealth))
	content.WriteString(fmt.Sprintf("Gold: %d\n", gs.Gold))
	content.WriteString(fmt.Sprintf("Turn: %d\n\n", gs.TurnCount))

	if loc, ok := gs.CurrentLocation(); ok {
		content.WriteString("Location:\n" + loc.Name + "\n\n")
	}
	if gs.CurrentQuest != "" {
		content.WriteString("Quest:\n" + gs.CurrentQuest + "\n\n")
	}

	content.WriteString("Equipped:\n")
	if gs.Equipment.MainHand != nil {
		content.WriteString("⚔ " + gs.Equipment.MainHand.Name + "\n")
	}
	if gs.Equipment.Armor != nil {
		content.WriteString("🛡 " + gs.Equipment.Armor.Name + "\n")
	}
	if gs.Equipment.MainHand == nil && gs.Equipment.Armor == nil {
		content.WriteString("Nothing\n")
	}
	content.WriteString("\n")

	content.WriteString("Inventory:\n")
	if len(gs.Inventory) == 0 {
		content.WriteString("Empty\n")
	}
	for i, item := range gs.Inventory {
		content.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, item.Icon, item.Name))
	}
	content.WriteString("\n")

	if len(gs.ActiveEffects) > 0 {
		content.WriteString("Effects:\n")
		for _, e := range gs.ActiveEffects {
			content.WriteString(fmt.Sprintf("• %s (%d)\n", e.Name, e.Duration))
		}
		content.WriteString("\n")
	}

	if c := gs.Combat; c != nil && c.IsActive {
		content.WriteString(errorStyle.Render("COMBAT") + "\n")
		content.WriteString(fmt.Sprintf("%s: %d/%d\n", c.EnemyName, c.EnemyHealth, c.MaxHealth))
		if c.LastAction != "" {
			content.WriteString(c.LastAction + "\n")
		}
		content.WriteString("\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Enter: Act\n")
	content.WriteString("• Ctrl+Y: Copy scene\n")
	content.WriteString("• /help: All commands\n")
	content.WriteString("• Ctrl+C: Quit\n")

	return content.String()
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showCreateModal {
		return m.updateCreateModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.sceneViewport, vpCmd = m.sceneViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.writeSceneContent()
		if m.gameState != nil {
			m.metaViewport.SetContent(writeMetadata(m.gameState))
		}
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlY:
			if n := len(m.scenes); n > 0 {
				last := m.scenes[n-1]
				if err := clipboard.WriteAll(last.title + "\n\n" + last.narrative); err == nil {
					m.notice = "Scene copied to clipboard."
				} else {
					m.notice = "Clipboard unavailable."
				}
				m.writeSceneContent()
			}
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.notice = ""
			m.err = nil
			m.progressTick = 0
			m.scenes = append(m.scenes, sceneEntry{action: input})
			m.writeSceneContent()
			return m, tea.Batch(m.submitAction(input), progressTick())
		}

	case actionResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			// Drop the pending action entry so it can be retried
			if n := len(m.scenes); n > 0 && m.scenes[n-1].narrative == "" {
				m.scenes = m.scenes[:n-1]
			}
		} else {
			m.err = nil
			m.gameState = msg.response.GameState
			if n := len(m.scenes); n > 0 && m.scenes[n-1].narrative == "" {
				m.scenes[n-1].title = msg.response.Segment.Title
				m.scenes[n-1].narrative = msg.response.Segment.Narrative
				m.scenes[n-1].choices = msg.response.Segment.Choices
				m.scenes[n-1].fallback = msg.response.Fallback
			}
			m.metaViewport.SetContent(writeMetadata(m.gameState))
		}
		m.writeSceneContent()
		return m, nil

	case mutationMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.gameState = msg.response.GameState
			m.metaViewport.SetContent(writeMetadata(m.gameState))
			if msg.response.OK {
				m.notice = fmt.Sprintf("%s succeeded.", msg.verb)
			} else {
				m.notice = fmt.Sprintf("%s had no effect.", msg.verb)
			}
		}
		m.writeSceneContent()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.notice = "Game saved."
		}
		m.writeSceneContent()
		return m, nil

	case gameLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.gameState = msg.gameState
			m.scenes = nil
			if msg.segment != nil {
				m.scenes = append(m.scenes, sceneEntry{
					title:     msg.segment.Title,
					narrative: msg.segment.Narrative,
					choices:   msg.segment.Choices,
				})
			}
			m.notice = "Game loaded."
			m.metaViewport.SetContent(writeMetadata(m.gameState))
		}
		m.writeSceneContent()
		return m, nil

	case noticeMsg:
		m.notice = string(msg)
		m.writeSceneContent()
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeSceneContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.sceneViewport, vpCmd = m.sceneViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) layout() {
	sceneWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - sceneWidth - 6

	m.sceneViewport.Width = sceneWidth - 2
	m.sceneViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(sceneWidth - 4)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	m.textarea.Reset()
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/help":
		m.notice = strings.TrimSpace(`
Commands:
/save              save to the slot (overwrites)
/load              restore the saved game
/recipes           list craftable recipes
/craft <recipe>    craft by recipe id
/equip <n>         equip inventory item number n
/unequip main_hand|armor
/ask <question>    ask the guide (no turn taken)
/log               show the combat log`)
		m.writeSceneContent()
		return m, nil

	case "/save":
		return m, m.doSave()

	case "/load":
		return m, m.doLoad()

	case "/recipes":
		return m, m.doListRecipes()

	case "/craft":
		if len(fields) < 2 {
			m.notice = "Usage: /craft <recipe-id>"
			m.writeSceneContent()
			return m, nil
		}
		return m, m.doCraft(fields[1])

	case "/equip":
		if len(fields) < 2 {
			m.notice = "Usage: /equip <inventory number>"
			m.writeSceneContent()
			return m, nil
		}
		var n int
		if _, err := fmt.Sscanf(fields[1], "%d", &n); err != nil || n < 1 || n > len(m.gameState.Inventory) {
			m.notice = "No such inventory item."
			m.writeSceneContent()
			return m, nil
		}
		return m, m.doEquip(m.gameState.Inventory[n-1].ID)

	case "/unequip":
		if len(fields) < 2 {
			m.notice = "Usage: /unequip main_hand|armor"
			m.writeSceneContent()
			return m, nil
		}
		return m, m.doUnequip(fields[1])

	case "/ask":
		question := strings.TrimSpace(input[len(fields[0]):])
		if question == "" {
			m.notice = "Usage: /ask <question>"
			m.writeSceneContent()
			return m, nil
		}
		return m, m.doAsk(question)

	case "/log":
		if c := m.gameState.Combat; c != nil && len(c.Log) > 0 {
			var b strings.Builder
			b.WriteString("Combat log:\n")
			for _, e := range c.Log {
				b.WriteString(fmt.Sprintf("[%d] %s\n", e.Turn, e.Text))
			}
			m.notice = b.String()
		} else {
			m.notice = "No combat log."
		}
		m.writeSceneContent()
		return m, nil

	default:
		m.notice = "Unknown command. Try /help."
		m.writeSceneContent()
		return m, nil
	}
}

func (m ConsoleUI) submitAction(action string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendAction(m.client, m.config.APIBaseURL, m.gameState.ID, action)
		return actionResponseMsg{resp, err}
	}
}

func (m ConsoleUI) doEquip(itemID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := equipItem(m.client, m.config.APIBaseURL, m.gameState.ID, itemID)
		return mutationMsg{"Equip", resp, err}
	}
}

func (m ConsoleUI) doUnequip(slot string) tea.Cmd {
	return func() tea.Msg {
		resp, err := unequipSlot(m.client, m.config.APIBaseURL, m.gameState.ID, slot)
		return mutationMsg{"Unequip", resp, err}
	}
}

func (m ConsoleUI) doCraft(recipeID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := craftItem(m.client, m.config.APIBaseURL, m.gameState.ID, recipeID)
		return mutationMsg{"Craft", resp, err}
	}
}

func (m ConsoleUI) doListRecipes() tea.Cmd {
	client, baseURL := m.client, m.config.APIBaseURL
	return func() tea.Msg {
		recipes, err := listRecipes(client, baseURL)
		if err != nil {
			return savedMsg{err}
		}
		var b strings.Builder
		b.WriteString("Recipes:\n")
		for _, r := range recipes {
			var parts []string
			for _, ing := range r.Ingredients {
				parts = append(parts, fmt.Sprintf("%dx %s", ing.Count, ing.Name))
			}
			b.WriteString(fmt.Sprintf("• %s (%s): %s\n", r.Name, r.ID, strings.Join(parts, ", ")))
		}
		return noticeMsg(b.String())
	}
}

func (m ConsoleUI) doAsk(question string) tea.Cmd {
	return func() tea.Msg {
		reply, err := askGuide(m.client, m.config.APIBaseURL, m.gameState.ID, question)
		if err != nil {
			return savedMsg{err}
		}
		return noticeMsg("Guide: " + reply)
	}
}

type noticeMsg string

func (m ConsoleUI) doSave() tea.Cmd {
	return func() tea.Msg {
		return savedMsg{saveGame(m.client, m.config.APIBaseURL, m.gameState.ID)}
	}
}

func (m ConsoleUI) doLoad() tea.Cmd {
	return func() tea.Msg {
		gs, seg, err := loadGame(m.client, m.config.APIBaseURL)
		return gameLoadedMsg{gs, seg, err}
	}
}

func (m ConsoleUI) updateCreateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case gameStateCreatedMsg:
		m.creating = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.gameState = msg.gameState
			m.showCreateModal = false
			m.layout()
			m.scenes = []sceneEntry{{
				title:     "The Awakening Site",
				narrative: fmt.Sprintf("%s the %s opens their eyes. The realm awaits.", m.gameState.CharacterName, m.gameState.CharacterClass),
			}}
			m.writeSceneContent()
			m.metaViewport.SetContent(writeMetadata(m.gameState))
			m.textarea.Focus()
			m.ready = true
		}
		return m, textarea.Blink

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedClass > 0 {
				m.selectedClass--
			}
			return m, nil
		case tea.KeyDown:
			if m.selectedClass < len(classes)-1 {
				m.selectedClass++
			}
			return m, nil
		case tea.KeyEnter:
			if m.creating {
				return m, nil
			}
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				return m, nil
			}
			m.creating = true
			class := classes[m.selectedClass]
			return m, func() tea.Msg {
				gs, err := createGameState(m.client, m.config.APIBaseURL, name, class, "")
				return gameStateCreatedMsg{gs, err}
			}
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if !m.showCreateModal {
					m.textarea.Focus()
					return m, textarea.Blink
				}
				return m, nil
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderCreateModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	if m.creating {
		content.WriteString(modalTitleStyle.Render("Entering the Realm..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Forging your character..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Create Your Character"))
		content.WriteString("\n\n")
		content.WriteString("Name:\n")
		content.WriteString(m.nameInput.View())
		content.WriteString("\n\nClass:\n")
		for i, c := range classes {
			if i == m.selectedClass {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", c)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", c)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("↑/↓ class, Enter to begin, Ctrl+C to exit"))
		if m.err != nil {
			content.WriteString("\n\n")
			content.WriteString(errorStyle.Render(m.err.Error()))
		}
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Unsaved progress will be lost. Use /save first.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showCreateModal {
		return m.renderCreateModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	sceneWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - sceneWidth - 6

	scenePanel := scenePanelStyle.Width(sceneWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.sceneViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(sceneWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, scenePanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.sceneViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
