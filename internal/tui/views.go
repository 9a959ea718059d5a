package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tissueplus/tissue/internal/domain"
	"github.com/tissueplus/tissue/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	// Handle modal states
	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateConfirmLogout:
		return m.renderLogoutConfirmation()
	case StateConfirmSubmit:
		return m.renderSubmitConfirmation()
	}

	var rows []string
	if m.ActiveView == ViewVideos {
		rows = m.renderVideoRows()
	} else {
		rows = m.renderDownloadRows()
	}

	// Fill the content area so the footer stays at the bottom
	contentHeight := m.Height - ChromeHeight
	for len(rows) < contentHeight {
		rows = append(rows, "")
	}

	return strings.Join([]string{
		m.renderTabs(),
		m.renderInfoLine(),
		strings.Join(rows, "\n"),
		m.renderFooter(),
	}, "\n")
}

// renderTabs renders the view switcher and right-aligned badges
func (m Model) renderTabs() string {
	tab := func(v ViewKind, count int) string {
		label := fmt.Sprintf("%s (%d)", v, count)
		if v == m.ActiveView {
			return styles.ActiveTabStyle.Render(label)
		}
		return styles.InactiveTabStyle.Render(label)
	}
	left := tab(ViewVideos, len(m.videos)) + " " + tab(ViewDownloads, len(m.downloads))

	var right string
	if m.ActiveView == ViewVideos && m.batch.Enabled() {
		right = styles.BadgeStyle.Render(fmt.Sprintf("BATCH %d selected", m.batch.Count()))
	} else if m.ActiveView == ViewDownloads && m.selected.HasSelection() {
		right = styles.BadgeStyle.Render(fmt.Sprintf("%d selected", m.selected.Count()))
	}
	if m.version.UpdateAvailable() {
		right += " " + styles.DimBadgeStyle.Render("server update "+m.version.Latest)
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderInfoLine renders the filter input or the current filter/sort state
func (m Model) renderInfoLine() string {
	if m.State == StateFiltering {
		return m.filterInput.View()
	}

	var parts []string
	if q := m.activeQuery(); q != "" {
		parts = append(parts, styles.FilterPromptStyle.Render("/ ")+styles.FilterStyle.Render(q))
	}
	if m.ActiveView == ViewVideos {
		order := "↑"
		if m.sortDesc {
			order = "↓"
		}
		parts = append(parts, styles.DimStyle.Render("sort: "+m.sortField.String()+" "+order))
		parts = append(parts, styles.DimStyle.Render("status: "+m.statusFilter.String()))
	}
	return strings.Join(parts, styles.DimStyle.Render("  ·  "))
}

func (m Model) renderVideoRows() []string {
	if len(m.videos) == 0 {
		if m.loadingVideos {
			return []string{styles.DimStyle.Render("  Loading videos...")}
		}
		return []string{styles.DimStyle.Render("  No videos")}
	}

	start, end := m.videoCursor.Window(len(m.videos))
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderVideoRow(m.videos[i], i == m.videoCursor.Index()))
	}
	return rows
}

func (m Model) renderVideoRow(v domain.Video, isCursor bool) string {
	var prefix string
	if m.batch.Enabled() {
		prefix = styles.RenderCheckbox(m.batch.IsSelected(v)) + " "
	}
	if m.showBadges {
		prefix += RenderStatusBadge(m.status.StatusOf(v.Num)) + " "
	}

	size := v.FormattedSize()
	width := m.Width - lipgloss.Width(prefix) - len(size) - 3
	title := styles.Truncate(v.DisplayTitle(), width)
	if len(v.Actors) > 0 && lipgloss.Width(title)+len(v.ActorList())+3 <= width {
		title += styles.DimStyle.Render(" · " + v.ActorList())
	}

	line := " " + prefix + styles.Pad(title, width) + " " + size
	if isCursor {
		return styles.SelectedItemStyle.Render(styles.Pad(line, m.Width))
	}
	return styles.NormalItemStyle.Render(line)
}

func (m Model) renderDownloadRows() []string {
	if len(m.downloads) == 0 {
		if m.loadingDownloads {
			return []string{styles.DimStyle.Render("  Loading downloads...")}
		}
		return []string{styles.DimStyle.Render("  No downloads")}
	}

	start, end := m.downloadCursor.Window(len(m.downloads))
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderDownloadRow(m.downloads[i], i == m.downloadCursor.Index()))
	}
	return rows
}

func (m Model) renderDownloadRow(d domain.Download, isCursor bool) string {
	prefix := styles.RenderCheckbox(m.selected.IsSelected(d.Hash)) + " "
	bar := styles.RenderProgressBar(d.Percent(), 10) + fmt.Sprintf(" %3d%% ", d.Percent())
	suffix := " " + d.State + " " + d.FormattedSize()

	width := m.Width - lipgloss.Width(prefix) - lipgloss.Width(bar) - len(suffix) - 1
	name := styles.Truncate(d.Name, width)

	line := " " + prefix + bar + styles.Pad(name, width) + styles.DimStyle.Render(suffix)
	if isCursor {
		return styles.SelectedItemStyle.Render(styles.Pad(line, m.Width))
	}
	return styles.NormalItemStyle.Render(line)
}

// RenderStatusBadge renders the download status indicator for a video
func RenderStatusBadge(status domain.DownloadStatus) string {
	switch {
	case status == domain.StatusDownloaded:
		return styles.DownloadedStyle.Render(styles.DownloadedChar)
	case status.IsActive():
		return styles.DownloadingStyle.Render(styles.DownloadingChar)
	default:
		return styles.NoneStyle.Render(styles.NoneChar)
	}
}

// RenderSpinner renders the current spinner frame
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}

func (m Model) renderFooter() string {
	// Left side: spinner + status when loading or status message active
	var left string
	switch {
	case m.loadingVideos || m.loadingDownloads:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	case m.ActiveView == ViewVideos && m.status.Loading:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Checking download status...")
	case m.ActiveView == ViewVideos && m.status.Err != nil:
		left = styles.WarningStyle.Render("! download status may be stale (r to retry)")
	}

	// Center section: context-specific hints
	var center string
	switch {
	case m.ActiveView == ViewVideos && m.batch.Enabled():
		center = hint("space", "select") + "  " + hint("a", "all") + "  " + hint("enter", "download")
	case m.ActiveView == ViewDownloads && m.selected.HasSelection():
		center = hint("V", "range") + "  " + hint("a", "toggle all") + "  " + hint("enter", "complete")
	}

	// Right side: "? help" hint
	right := hint("?", "help")

	// Layout: left + centered hints + right
	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		gap := m.Width - leftWidth - rightWidth
		if gap < 0 {
			gap = 0
		}
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func hint(k, desc string) string {
	return styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+desc)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      VIDEOS
  j/k        Up/down               b      Batch mode
  g/Home     First item            space  Select video
  G/End      Last item             a/A    Select/unselect all
  Ctrl+u/d   Scroll half page      enter  Download selected
  Tab        Switch view           f      Status filter
                                   s/S    Sort / reverse
FILTER                          DOWNLOADS
  /          Filter (@name         space  Select
             matches actors)       V      Select range
  Esc        Clear                 a      Toggle all
                                   enter  Mark complete
OTHER
  r          Refresh               L      Logout
  q          Quit                  ?      This help

Press ? or Esc to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderLogoutConfirmation renders the logout confirmation modal
func (m Model) renderLogoutConfirmation() string {
	modal := `
              Log Out?

  This will clear your credentials,
  server URL, and all cached data.

        [Y] Yes      [N] No
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}

// renderSubmitConfirmation renders the batch action confirmation modal
func (m Model) renderSubmitConfirmation() string {
	prompt := ""
	if m.pending != nil {
		prompt = m.pending.prompt
	}
	modal := "\n  " + prompt + "\n\n        [Y] Yes      [N] No\n"

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}
