package banner

import (
	"benchreport/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

func GetString() string {
	renderer := lipgloss.DefaultRenderer()

	style := renderer.NewStyle().
		Foreground(styles.ColorBanner).
		Bold(true)

	ascii := `
    __                     __                              __ 
   / /_  ___  ____  _____/ /_  ________  ____  ____  _____/ /_
  / __ \/ _ \/ __ \/ ___/ __ \/ ___/ _ \/ __ \/ __ \/ ___/ __/
 / /_/ /  __/ / / / /__/ / / / /  /  __/ /_/ / /_/ / /  / /_  
/_.___/\___/_/ /_/\___/_/ /_/_/   \___/ .___/\____/_/   \__/  
                                     /_/                      `

	return "\n" + style.Render(ascii) + "\n"
}
