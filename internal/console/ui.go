package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/contactdesk/contactdesk/internal/core/domain"
	"github.com/contactdesk/contactdesk/internal/core/ports"
)

const (
	menuWidth  = 60
	promptMark = "▶"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 2).
			Width(menuWidth)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	infoStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			Width(menuWidth)
)

// UI renders menus, cards and tables to the session's output writer.
type UI struct {
	out io.Writer
}

func NewUI(out io.Writer) *UI {
	return &UI{out: out}
}

func (u *UI) Println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UI) Error(msg string) {
	fmt.Fprintln(u.out, errorStyle.Render("✗ "+msg))
}

func (u *UI) Info(msg string) {
	fmt.Fprintln(u.out, infoStyle.Render("✓ "+msg))
}

func (u *UI) Header(title string) {
	fmt.Fprintln(u.out, "")
	fmt.Fprintln(u.out, sectionStyle.Render("── "+title+" "+strings.Repeat("─", max(0, menuWidth-len(title)-4))))
}

// Menu renders a titled, framed option list. A blank option renders as a
// separator line.
func (u *UI) Menu(title string, options []string) {
	lines := make([]string, 0, len(options)+2)
	lines = append(lines, titleStyle.Render(title), "")
	lines = append(lines, options...)
	fmt.Fprintln(u.out, frameStyle.Render(strings.Join(lines, "\n")))
}

// LoginBox is the banner shown before the username prompt.
func (u *UI) LoginBox() {
	fmt.Fprintln(u.out, frameStyle.Render(
		titleStyle.Render("ContactDesk")+"\n"+
			labelStyle.Render("Sign in to continue. Enter 0 or exit to quit.")))
}

// ContactCard renders one contact as a bordered card, unset fields dashed.
func (u *UI) ContactCard(c *domain.Contact) {
	rows := []string{
		fmt.Sprintf("%s  #%d", titleStyle.Render(fullName(c)), c.ID),
		row("Nickname", deref(c.Nickname)),
		row("Phone", c.PrimaryPhone),
		row("Phone 2", deref(c.SecondaryPhone)),
		row("Email", deref(c.Email)),
		row("LinkedIn", deref(c.LinkedinURL)),
		row("Birthdate", birthdate(c)),
		row("Address", deref(c.Address)),
	}
	fmt.Fprintln(u.out, cardStyle.Render(strings.Join(rows, "\n")))
}

// UserTable renders the Manager's staff list.
func (u *UI) UserTable(users []*domain.Principal) {
	header := fmt.Sprintf("%-5s %-15s %-15s %-15s %-16s", "ID", "Username", "Name", "Surname", "Role")
	lines := []string{sectionStyle.Render(header), strings.Repeat("─", menuWidth+8)}
	for _, usr := range users {
		lines = append(lines, fmt.Sprintf("%-5d %-15s %-15s %-15s %-16s",
			usr.ID, usr.Username, usr.FirstName, usr.LastName, usr.Role))
	}
	fmt.Fprintln(u.out, strings.Join(lines, "\n"))
}

// Stats renders the Manager's aggregate view.
func (u *UI) Stats(stats ports.ContactStats, roles map[domain.Role]int64) {
	u.Header("SYSTEM STATISTICS")
	fmt.Fprintln(u.out, row("Total contacts", fmt.Sprintf("%d", stats.Total)))
	fmt.Fprintln(u.out, row("With LinkedIn", fmt.Sprintf("%d", stats.WithLinkedin)))
	fmt.Fprintln(u.out, row("With email", fmt.Sprintf("%d", stats.WithEmail)))
	for _, role := range []domain.Role{domain.RoleTester, domain.RoleJuniorDeveloper, domain.RoleSeniorDeveloper, domain.RoleManager} {
		if n, ok := roles[role]; ok {
			fmt.Fprintln(u.out, row(string(role)+"s", fmt.Sprintf("%d", n)))
		}
	}
}

func row(label, value string) string {
	if value == "" {
		value = "-"
	}
	return labelStyle.Render(fmt.Sprintf("%-11s", label+":")) + " " + value
}

func fullName(c *domain.Contact) string {
	parts := []string{c.FirstName}
	if c.MiddleName != nil {
		parts = append(parts, *c.MiddleName)
	}
	parts = append(parts, c.LastName)
	return strings.Join(parts, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func birthdate(c *domain.Contact) string {
	if c.Birthdate == nil {
		return ""
	}
	return c.Birthdate.Format("2006-01-02")
}
