package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/placeholder"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(60)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Bold(true)
)

// BrowseCmd lists records from the public placeholder directory
type BrowseCmd struct {
	Endpoint string `arg:"" enum:"users,posts,photos" default:"users" help:"What to list: users, posts or photos."`
}

func (c *BrowseCmd) Run(ctx *cli.Context) error {
	runCtx, cancel := cli.RunContext()
	defer cancel()

	dir := ctx.Directory()
	var out string
	switch c.Endpoint {
	case placeholder.EndpointUsers:
		users, err := dir.Users(runCtx)
		if err != nil {
			return err
		}
		out = RenderUsers(users)
	case placeholder.EndpointPosts:
		posts, err := dir.Posts(runCtx)
		if err != nil {
			return err
		}
		out = RenderPosts(posts)
	case placeholder.EndpointPhotos:
		photos, err := dir.Photos(runCtx)
		if err != nil {
			return err
		}
		out = RenderPhotos(photos)
	default:
		return fmt.Errorf("unknown endpoint %q", c.Endpoint)
	}
	fmt.Println(out)
	return nil
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

// RenderUsers renders one card per user.
func RenderUsers(users []models.User) string {
	cards := make([]string, len(users))
	for i, u := range users {
		cards[i] = cardStyle.Render(strings.Join([]string{
			titleStyle.Render(u.Name),
			field("Username", u.Username),
			field("Email", u.Email),
			field("Phone", u.Phone),
			field("Website", u.Website),
			field("Company", u.Company.Name),
			field("City", u.Address.City),
		}, "\n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// RenderPosts renders one card per post.
func RenderPosts(posts []models.Post) string {
	cards := make([]string, len(posts))
	for i, p := range posts {
		cards[i] = cardStyle.Render(strings.Join([]string{
			titleStyle.Render(p.Title),
			p.Body,
			"",
			fmt.Sprintf("%s | %s", field("Post ID", fmt.Sprint(p.ID)), field("User ID", fmt.Sprint(p.UserID))),
		}, "\n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// RenderPhotos renders one card per photo with its thumbnail link.
func RenderPhotos(photos []models.Photo) string {
	cards := make([]string, len(photos))
	for i, p := range photos {
		cards[i] = cardStyle.Render(strings.Join([]string{
			titleStyle.Render(p.Title),
			field("Album ID", fmt.Sprint(p.AlbumID)),
			field("Thumbnail", p.ThumbnailURL),
		}, "\n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
