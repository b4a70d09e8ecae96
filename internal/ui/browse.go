package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/repositories"
)

// ViewState represents the current view in the catalog browser.
type ViewState int

const (
	ChannelListView ViewState = iota
	VideoListView
)

var (
	_ list.Item = channelItem{}
	_ list.Item = videoItem{}
)

// channelItem wraps [models.Channel] to implement [list.Item].
type channelItem struct {
	channel *models.Channel
}

func (i channelItem) FilterValue() string { return i.channel.Name }
func (i channelItem) Title() string       { return i.channel.Name }
func (i channelItem) Description() string {
	if i.channel.Description != "" {
		return i.channel.Description
	}
	return i.channel.ID
}

// videoItem wraps [models.Video] to implement [list.Item].
type videoItem struct {
	video *models.Video
}

func (i videoItem) FilterValue() string { return i.video.Title }
func (i videoItem) Title() string       { return i.video.Title }
func (i videoItem) Description() string {
	if len(i.video.Tags) > 0 {
		return strings.Join(i.video.Tags, ", ")
	}
	return i.video.ID
}

// BrowseModel is a two-level browser over the local catalog: channels first,
// then the selected channel's imported videos. It reads from the store only;
// nothing in the browser touches the provider.
type BrowseModel struct {
	store       *repositories.Store
	view        ViewState
	width       int
	height      int
	channelList list.Model
	videoList   list.Model
	selected    *models.Channel
	err         error
	help        help.Model
	keys        keyMap
}

// NewBrowseModel creates a catalog browser over an open store.
func NewBrowseModel(store *repositories.Store) *BrowseModel {
	return &BrowseModel{
		store: store,
		view:  ChannelListView,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

type channelsLoadedMsg struct {
	channels []*models.Channel
	err      error
}

type videosLoadedMsg struct {
	videos []*models.Video
	err    error
}

func (m *BrowseModel) loadChannels() tea.Cmd {
	return func() tea.Msg {
		channels, err := m.store.Channels.List(map[string]any{})
		return channelsLoadedMsg{channels: channels, err: err}
	}
}

func (m *BrowseModel) loadVideos(channelID string) tea.Cmd {
	return func() tea.Msg {
		videos, err := m.store.Videos.List(map[string]any{"channel_id": channelID})
		return videosLoadedMsg{videos: videos, err: err}
	}
}

// Init loads the channel list from the store.
func (m *BrowseModel) Init() tea.Cmd {
	return m.loadChannels()
}

// Update handles incoming messages and updates the model state.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.channelList.SetSize(msg.Width-4, msg.Height-8)
		m.videoList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.back):
			if m.view == VideoListView {
				m.view = ChannelListView
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.enter):
			if m.view == ChannelListView {
				if item, ok := m.channelList.SelectedItem().(channelItem); ok {
					m.selected = item.channel
					return m, m.loadVideos(item.channel.ID)
				}
			}
			return m, nil
		}

	case channelsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.channels))
		for i, channel := range msg.channels {
			items[i] = channelItem{channel: channel}
		}
		m.channelList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.channelList.Title = "Imported Channels"
		m.channelList.SetSize(m.width-4, m.height-8)
		return m, nil

	case videosLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.videos))
		for i, video := range msg.videos {
			items[i] = videoItem{video: video}
		}
		m.videoList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.videoList.Title = fmt.Sprintf("Videos in '%s'", m.selected.Name)
		m.videoList.SetSize(m.width-4, m.height-8)
		m.view = VideoListView
		return m, nil
	}

	var cmd tea.Cmd
	switch m.view {
	case ChannelListView:
		m.channelList, cmd = m.channelList.Update(msg)
	case VideoListView:
		m.videoList, cmd = m.videoList.Update(msg)
	}
	return m, cmd
}

// View renders the current list plus contextual help.
func (m *BrowseModel) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	}

	var body string
	switch m.view {
	case ChannelListView:
		body = m.channelList.View()
	case VideoListView:
		body = m.videoList.View()
	}

	return body + "\n" + m.help.View(m.keys)
}
