package tui

import (
	"context"
	"fmt"
	"net/netip"
	"strings"
	"time"
	"udpreceiver/domain/app"
	"udpreceiver/infrastructure/telemetry/trafficstats"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	refreshInterval = 250 * time.Millisecond
	// header line, hint line and the feed border
	chromeHeight = 4
)

type StatsSource interface {
	Snapshot() trafficstats.Snapshot
}

type AddressSource interface {
	LocalAddr() netip.AddrPort
}

type DashboardOptions struct {
	Stats   StatsSource
	Address AddressSource
	Feed    *Feed
	// Cancel stops the whole application when the user quits.
	Cancel context.CancelFunc
}

type tickMsg struct{}

type contextDoneMsg struct{}

type feedChangedMsg struct{}

type Dashboard struct {
	ctx      context.Context
	options  DashboardOptions
	viewport viewport.Model
	snapshot trafficstats.Snapshot
	width    int
	height   int
	sized    bool
}

func NewDashboard(ctx context.Context, options DashboardOptions) Dashboard {
	if options.Feed == nil {
		options.Feed = NewFeed(defaultFeedCapacity)
	}
	return Dashboard{
		ctx:      ctx,
		options:  options,
		viewport: viewport.New(80, 20),
	}
}

func (m Dashboard) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForContextDone(m.ctx), waitForFeed(m.ctx, m.options.Feed))
}

func (m Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-2, 1)
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.sized = true
		m.refresh()
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd()
	case feedChangedMsg:
		m.refresh()
		return m, waitForFeed(m.ctx, m.options.Feed)
	case contextDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.options.Cancel != nil {
				m.options.Cancel()
			}
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Dashboard) refresh() {
	if m.options.Stats != nil {
		m.snapshot = m.options.Stats.Snapshot()
	}
	follow := m.viewport.AtBottom()
	m.viewport.SetContent(strings.Join(m.options.Feed.Tail(defaultFeedCapacity), "\n"))
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m Dashboard) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteByte('\n')
	b.WriteString(feedStyle.Render(m.viewport.View()))
	b.WriteByte('\n')
	b.WriteString(hintStyle.Render("q quit • ↑/↓ scroll"))
	return b.String()
}

func (m Dashboard) header() string {
	address := "binding..."
	if m.options.Address != nil {
		if addr := m.options.Address.LocalAddr(); addr.IsValid() {
			address = addr.String()
		}
	}

	errorsStyle := statValueStyle
	if m.snapshot.DecodeErrors > 0 || m.snapshot.Truncated > 0 {
		errorsStyle = warnValueStyle
	}

	parts := []string{
		titleStyle.Render(app.Name),
		stat("listening", address, statValueStyle),
		stat("datagrams", fmt.Sprintf("%d", m.snapshot.Datagrams), statValueStyle),
		stat("received", trafficstats.FormatTotal(m.snapshot.Bytes), statValueStyle),
		stat("rate", fmt.Sprintf("%d/s %s", m.snapshot.DatagramRate, trafficstats.FormatRate(m.snapshot.ByteRate)), statValueStyle),
		stat("errors", fmt.Sprintf("%d/%d", m.snapshot.DecodeErrors, m.snapshot.Truncated), errorsStyle),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "  "))
}

func stat(label, value string, style lipgloss.Style) string {
	return statLabelStyle.Render(label+" ") + style.Render(value)
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func waitForContextDone(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return contextDoneMsg{}
	}
}

// waitForFeed lets new datagrams show up without waiting for the next tick.
func waitForFeed(ctx context.Context, feed *Feed) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-feed.Changes():
			return feedChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}
