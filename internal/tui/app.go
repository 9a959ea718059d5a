package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tissueplus/tissue/internal/domain"
	"github.com/tissueplus/tissue/internal/downloadstatus"
	"github.com/tissueplus/tissue/internal/selection"
	"github.com/tissueplus/tissue/internal/service"
	"github.com/tissueplus/tissue/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateFiltering
	StateHelp
	StateConfirmLogout
	StateConfirmSubmit
)

// ViewKind identifies which list is on screen
type ViewKind int

const (
	ViewVideos ViewKind = iota
	ViewDownloads
)

func (v ViewKind) String() string {
	if v == ViewDownloads {
		return "Downloads"
	}
	return "Videos"
}

// Vertical layout: tab line, info/filter line, footer line
const ChromeHeight = 3

// Services bundles the services the TUI drives. Session and Version may be nil.
type Services struct {
	Videos    *service.VideoService
	Downloads *service.DownloadService
	Session   *service.SessionService
	Version   *service.VersionService
}

// Options configures the initial model
type Options struct {
	StartView    ViewKind
	StatusBadges bool
}

// pendingSubmit is a batch action waiting for confirmation
type pendingSubmit struct {
	prompt string
	cmd    tea.Cmd
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State      ApplicationState
	ActiveView ViewKind
	Ready      bool
	LoggedOut  bool

	svc Services

	// Download status badges
	statusCache *downloadstatus.Cache
	statusCh    <-chan struct{}
	status      downloadstatus.State
	showBadges  bool

	// Videos view
	allVideos    []domain.Video
	videos       []domain.Video // Filtered and sorted, as displayed
	videoCursor  listCursor
	batch        *selection.Batch
	videoQuery   string
	statusFilter service.StatusFilter
	sortField    service.SortField
	sortDesc     bool

	// Downloads view
	allDownloads   []domain.Download
	downloads      []domain.Download // Filtered, as displayed
	downloadCursor listCursor
	selected       *selection.Store[domain.Download, string]
	downloadQuery  string

	filterInput textinput.Model
	pending     *pendingSubmit
	version     domain.VersionInfo

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg        string
	StatusIsErr      bool
	loadingVideos    bool
	loadingDownloads bool
	SpinnerFrame     int
}

// NewStatusCache builds a download status cache whose changes are delivered
// on the returned channel, ready for NewModel. A zero timeout leaves
// lookups unbounded.
func NewStatusCache(lookup downloadstatus.Lookup, logger *slog.Logger, timeout time.Duration) (*downloadstatus.Cache, <-chan struct{}) {
	ch := make(chan struct{}, 1)
	cache := downloadstatus.New(lookup, logger,
		downloadstatus.WithObserver(NewChannelObserver(ch)),
		downloadstatus.WithTimeout(timeout),
	)
	return cache, ch
}

// NewModel creates a new application model.
// Cached lists are shown immediately; Init refreshes them from the server.
func NewModel(svc Services, cache *downloadstatus.Cache, statusCh <-chan struct{}, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "type to filter, @name for actors..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	m := Model{
		State:       StateBrowsing,
		ActiveView:  opts.StartView,
		svc:         svc,
		statusCache: cache,
		statusCh:    statusCh,
		showBadges:  opts.StatusBadges,
		batch:       selection.NewBatch(),
		selected:    selection.NewStore(func(d domain.Download) string { return d.Hash }),
		filterInput: ti,
	}

	if videos, ok := svc.Videos.CachedVideos(); ok {
		m.allVideos = videos
	}
	if downloads, ok := svc.Downloads.CachedDownloads(); ok {
		m.allDownloads = downloads
	}
	m.loadingVideos = true
	m.loadingDownloads = true

	m.applyVideoFilter()
	m.applyDownloadFilter()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		RefreshVideosCmd(m.svc.Videos),
		RefreshDownloadsCmd(m.svc.Downloads),
		WaitForStatusCmd(m.statusCh),
		TickCmd(100 * time.Millisecond),
	}
	if m.svc.Version != nil {
		cmds = append(cmds, CheckVersionCmd(m.svc.Version))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(100 * time.Millisecond)

	case VideosLoadedMsg:
		m.loadingVideos = false
		m.allVideos = msg.Videos
		m.applyVideoFilter()
		return m, nil

	case DownloadsLoadedMsg:
		m.loadingDownloads = false
		m.allDownloads = msg.Downloads
		m.applyDownloadFilter()
		return m, nil

	case StatusChangedMsg:
		prevErr := m.status.Err
		m.status = m.statusCache.Snapshot()
		if m.status.Err != nil && prevErr == nil {
			m.StatusMsg = "Download status unavailable: " + m.status.Err.Error()
			m.StatusIsErr = true
		}
		if m.statusFilter != service.StatusFilterAll {
			m.applyVideoFilter()
		}
		return m, WaitForStatusCmd(m.statusCh)

	case DownloadsQueuedMsg:
		m.batch.Exit()
		m.statusCache.Reload()
		m.status = m.statusCache.Snapshot()
		m.StatusMsg = fmt.Sprintf("Queued %d download(s)", len(msg.Nums))
		m.StatusIsErr = false
		m.loadingDownloads = true
		return m, tea.Batch(RefreshDownloadsCmd(m.svc.Downloads), ClearStatusCmd(3*time.Second))

	case DownloadsCompletedMsg:
		m.selected.Clear()
		m.statusCache.Reload()
		m.status = m.statusCache.Snapshot()
		m.StatusMsg = fmt.Sprintf("Completed %d download(s)", msg.Count)
		m.StatusIsErr = false
		m.loadingDownloads = true
		return m, tea.Batch(RefreshDownloadsCmd(m.svc.Downloads), ClearStatusCmd(3*time.Second))

	case VersionCheckedMsg:
		m.version = msg.Info
		return m, nil

	case LogoutCompleteMsg:
		if msg.Error != nil {
			m.StatusMsg = fmt.Sprintf("Logout failed: %v", msg.Error)
			m.StatusIsErr = true
			m.State = StateBrowsing
			return m, ClearStatusCmd(5 * time.Second)
		}
		// Logout successful - quit the application
		m.LoggedOut = true
		m.statusCache.Close()
		return m, tea.Quit

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		m.loadingVideos = false
		m.loadingDownloads = false
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input internals
	if m.State == StateFiltering {
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		if msg.String() == "esc" || msg.String() == "?" || msg.String() == "q" {
			m.State = StateBrowsing
		}
		return m, nil

	case StateConfirmLogout:
		switch {
		case key.Matches(msg, Keys.Confirm):
			return m, LogoutCmd(m.svc.Session)
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil

	case StateConfirmSubmit:
		switch {
		case key.Matches(msg, Keys.Confirm):
			cmd := m.pending.cmd
			m.pending = nil
			m.State = StateBrowsing
			return m, cmd
		case key.Matches(msg, Keys.Deny):
			m.pending = nil
			m.State = StateBrowsing
		}
		return m, nil

	case StateFiltering:
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		m.statusCache.Close()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.NextView):
		if m.ActiveView == ViewVideos {
			m.ActiveView = ViewDownloads
		} else {
			m.ActiveView = ViewVideos
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.State = StateFiltering
		m.filterInput.SetValue(m.activeQuery())
		m.filterInput.CursorEnd()
		cmd := m.filterInput.Focus()
		return m, cmd

	case key.Matches(msg, Keys.Refresh):
		m.statusCache.Reload()
		m.status = m.statusCache.Snapshot()
		if m.ActiveView == ViewVideos {
			m.loadingVideos = true
			return m, RefreshVideosCmd(m.svc.Videos)
		}
		m.loadingDownloads = true
		return m, RefreshDownloadsCmd(m.svc.Downloads)

	case key.Matches(msg, Keys.Logout):
		if m.svc.Session != nil {
			m.State = StateConfirmLogout
		}
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.activeCursor().Move(-1, m.activeCount())
		return m, nil
	case key.Matches(msg, Keys.Down):
		m.activeCursor().Move(1, m.activeCount())
		return m, nil
	case key.Matches(msg, Keys.HalfUp):
		c := m.activeCursor()
		c.Move(-c.HalfPage(), m.activeCount())
		return m, nil
	case key.Matches(msg, Keys.HalfDown):
		c := m.activeCursor()
		c.Move(c.HalfPage(), m.activeCount())
		return m, nil
	case key.Matches(msg, Keys.Home):
		m.activeCursor().Top()
		return m, nil
	case key.Matches(msg, Keys.End):
		m.activeCursor().Bottom(m.activeCount())
		return m, nil
	}

	if m.ActiveView == ViewVideos {
		return m.handleVideoKey(msg)
	}
	return m.handleDownloadKey(msg)
}

// handleFilterKey routes keys to the filter input while typing
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.State = StateBrowsing
		m.setActiveQuery("")
		return m, nil
	case "enter":
		// Accept filter, blur input to allow navigation
		m.filterInput.Blur()
		m.State = StateBrowsing
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.setActiveQuery(m.filterInput.Value())
	return m, cmd
}

func (m Model) handleVideoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		if m.batch.Enabled() {
			m.batch.Exit()
		} else if m.videoQuery != "" {
			m.setActiveQuery("")
		}

	case key.Matches(msg, Keys.StatusFilter):
		m.statusFilter = m.statusFilter.Next()
		m.applyVideoFilter()

	case key.Matches(msg, Keys.Sort):
		m.sortField = m.sortField.Next()
		m.applyVideoFilter()

	case key.Matches(msg, Keys.SortReverse):
		m.sortDesc = !m.sortDesc
		m.applyVideoFilter()

	case key.Matches(msg, Keys.BatchMode):
		m.batch.ToggleMode()

	case key.Matches(msg, Keys.Toggle):
		if v, ok := m.currentVideo(); ok {
			m.batch.Enter()
			m.batch.ToggleVideo(v)
			m.videoCursor.Move(1, len(m.videos))
		}

	case key.Matches(msg, Keys.SelectAll):
		m.batch.Enter()
		m.batch.SelectAll(m.videos)

	case key.Matches(msg, Keys.UnselectAll):
		m.batch.UnselectAll()

	case key.Matches(msg, Keys.Submit):
		nums := m.batch.SelectedNums()
		prompt := fmt.Sprintf("Download %d video(s)?", len(nums))
		if !m.batch.Enabled() || len(nums) == 0 {
			v, ok := m.currentVideo()
			if !ok || v.Num == "" {
				return m, nil
			}
			nums = []string{v.Num}
			prompt = "Download " + v.DisplayTitle() + "?"
		} else if hidden := len(nums) - len(m.batch.SelectedVideos(m.videos)); hidden > 0 {
			prompt = fmt.Sprintf("Download %d video(s), %d not shown?", len(nums), hidden)
		}
		m.pending = &pendingSubmit{
			prompt: prompt,
			cmd:    QueueDownloadsCmd(m.svc.Videos, nums),
		}
		m.State = StateConfirmSubmit
	}
	return m, nil
}

func (m Model) handleDownloadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		if m.selected.HasSelection() {
			m.selected.Clear()
		} else if m.downloadQuery != "" {
			m.setActiveQuery("")
		}

	case key.Matches(msg, Keys.Toggle):
		if d, ok := m.currentDownload(); ok {
			m.selected.Toggle(d.Hash)
			m.downloadCursor.Move(1, len(m.downloads))
		}

	case key.Matches(msg, Keys.SelectRange):
		d, ok := m.currentDownload()
		if !ok {
			break
		}
		if last, ok := m.selected.LastSelected(); ok {
			m.selected.SelectRange(last, d.Hash)
		} else {
			m.selected.Toggle(d.Hash)
		}

	case key.Matches(msg, Keys.SelectAll):
		m.selected.ToggleAll()

	case key.Matches(msg, Keys.UnselectAll):
		m.selected.Clear()

	case key.Matches(msg, Keys.Submit):
		hashes := m.selected.SelectedIDs()
		if len(hashes) == 0 {
			d, ok := m.currentDownload()
			if !ok {
				return m, nil
			}
			hashes = []string{d.Hash}
		}
		prompt := fmt.Sprintf("Mark %d download(s) complete?", len(hashes))
		if hidden := m.selected.Count() - len(m.selected.SelectedIDs()); hidden > 0 {
			prompt = fmt.Sprintf("Mark %d download(s) complete? %d selected but not shown are skipped", len(hashes), hidden)
		}
		m.pending = &pendingSubmit{
			prompt: prompt,
			cmd:    CompleteDownloadsCmd(m.svc.Downloads, hashes),
		}
		m.State = StateConfirmSubmit
	}
	return m, nil
}

// applyVideoFilter rebuilds the displayed video list and feeds the status cache.
// The cache sees the list before status filtering so a status filter cannot
// change the lookup batch.
func (m *Model) applyVideoFilter() {
	matched := service.FilterVideos(m.allVideos, m.videoQuery)
	sorted := service.SortVideos(matched, m.sortField, m.sortDesc)

	m.statusCache.SetVideos(sorted)
	m.status = m.statusCache.Snapshot()

	m.videos = service.FilterByStatus(sorted, m.status.Statuses, m.statusFilter)
	m.videoCursor.Clamp(len(m.videos))
}

// applyDownloadFilter rebuilds the displayed download list
func (m *Model) applyDownloadFilter() {
	m.downloads = service.FilterDownloads(m.allDownloads, m.downloadQuery)
	m.selected.SetItems(m.downloads)
	m.downloadCursor.Clamp(len(m.downloads))
}

func (m *Model) updateLayout() {
	h := m.Height - ChromeHeight
	m.videoCursor.SetHeight(h)
	m.downloadCursor.SetHeight(h)
}

func (m *Model) activeCursor() *listCursor {
	if m.ActiveView == ViewDownloads {
		return &m.downloadCursor
	}
	return &m.videoCursor
}

func (m Model) activeCount() int {
	if m.ActiveView == ViewDownloads {
		return len(m.downloads)
	}
	return len(m.videos)
}

func (m Model) activeQuery() string {
	if m.ActiveView == ViewDownloads {
		return m.downloadQuery
	}
	return m.videoQuery
}

func (m *Model) setActiveQuery(q string) {
	if m.ActiveView == ViewDownloads {
		m.downloadQuery = q
		m.applyDownloadFilter()
		return
	}
	m.videoQuery = q
	m.applyVideoFilter()
}

func (m Model) currentVideo() (domain.Video, bool) {
	i := m.videoCursor.Index()
	if i < 0 || i >= len(m.videos) {
		return domain.Video{}, false
	}
	return m.videos[i], true
}

func (m Model) currentDownload() (domain.Download, bool) {
	i := m.downloadCursor.Index()
	if i < 0 || i >= len(m.downloads) {
		return domain.Download{}, false
	}
	return m.downloads[i], true
}

// Batch exposes the video batch selection
func (m Model) Batch() *selection.Batch { return m.batch }

// Selection exposes the download range selection
func (m Model) Selection() *selection.Store[domain.Download, string] { return m.selected }

// Videos returns the videos as displayed
func (m Model) Videos() []domain.Video { return m.videos }

// Downloads returns the downloads as displayed
func (m Model) Downloads() []domain.Download { return m.downloads }
