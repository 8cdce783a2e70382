package setup

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/vadiminshakov/folio/config"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// credentialHints environment variables to export per platform.
var credentialHints = map[string]string{
	config.PlatformBitvavo: "BITVAVOKEY, BITVAVOSECRET",
	config.PlatformBinance: "BINANCE_API_KEY, BINANCE_API_SECRET",
	config.PlatformBybit:   "BYBIT_API_KEY, BYBIT_API_SECRET",
}

// RunTUI launches the terminal configuration wizard and writes the result to path.
// Credentials are never stored, the wizard only names the variables to export.
func RunTUI(path string) error {
	var (
		platform   string
		quote      string
		restURL    string
		tableStyle string
		debugging  bool
		confirm    bool
	)

	// defaults
	platform = config.PlatformBitvavo
	quote = config.DefaultQuoteCurrency
	tableStyle = config.DefaultTableStyle

	// step 1: welcome
	clearScreen()
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Configure the exchange account to summarize.\n"))

	// platform
	fmt.Println(stepStyle.Render("STEP 1: PLATFORM"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Exchange Platform").
				Options(
					huh.NewOption("Bitvavo", config.PlatformBitvavo),
					huh.NewOption("Binance", config.PlatformBinance),
					huh.NewOption("Bybit", config.PlatformBybit),
				).
				Value(&platform),
		),
	).Run()
	if err != nil {
		return err
	}

	// quote currency and endpoint
	clearScreen()
	fmt.Println(stepStyle.Render("STEP 2: MARKETS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Quote Currency").
				Description("Settlement currency of every market (e.g. EUR, USDT)").
				Value(&quote).
				Validate(validateCurrency),
			huh.NewInput().
				Title("REST URL").
				Description("Leave empty for the platform default").
				Value(&restURL),
		),
	).Run()
	if err != nil {
		return err
	}

	// output
	clearScreen()
	fmt.Println(stepStyle.Render("STEP 3: OUTPUT"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Table Style").
				Options(
					huh.NewOption("Plain columns", "plain"),
					huh.NewOption("Rounded box", "box"),
				).
				Value(&tableStyle),
			huh.NewConfirm().
				Title("Debug logging?").
				Value(&debugging),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	clearScreen()
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary(platform, quote, restURL, tableStyle)))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	cfgTmp := config.ConfigTmp{
		Platform:      platform,
		QuoteCurrency: strings.ToUpper(strings.TrimSpace(quote)),
		RESTURL:       strings.TrimSpace(restURL),
		Debugging:     debugging,
		TableStyle:    tableStyle,
	}
	if err := config.Write(path, cfgTmp); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(
		fmt.Sprintf("\n✓ Configuration saved to %s\nExport %s and run folio -config %s", path, credentialHints[platform], path)))
	return nil
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("FOLIO CONFIG WIZARD"))
}

func summary(platform, quote, restURL, tableStyle string) string {
	if restURL == "" {
		restURL = "(default)"
	}
	return fmt.Sprintf(
		"Platform: %s\nQuote: %s\nREST URL: %s\nTable: %s\nCredentials: %s\n",
		platform, strings.ToUpper(quote), restURL, tableStyle, credentialHints[platform],
	)
}

func validateCurrency(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("quote currency cannot be empty")
	}
	for _, r := range s {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return fmt.Errorf("invalid currency %q: letters and digits only", s)
		}
	}
	return nil
}
