package domain

// PanelKind names one settings sub-form.
type PanelKind string

const (
	PanelGeneral           PanelKind = "general"
	PanelHunt              PanelKind = "hunt"
	PanelBattle            PanelKind = "battle"
	PanelOwo               PanelKind = "owo"
	PanelLevel             PanelKind = "level"
	PanelPray              PanelKind = "pray"
	PanelCookie            PanelKind = "cookie"
	PanelSell              PanelKind = "sell"
	PanelHuntbot           PanelKind = "huntbot"
	PanelGems              PanelKind = "gems"
	PanelMisspell          PanelKind = "misspell"
	PanelSleep             PanelKind = "sleep"
	PanelWebhook           PanelKind = "webhook"
	PanelDesktop           PanelKind = "desktop"
	PanelAudio             PanelKind = "audio"
	PanelMobile            PanelKind = "mobile"
	PanelCoinflip          PanelKind = "coinflip"
	PanelSlots             PanelKind = "slots"
	PanelChannelSwitcher   PanelKind = "channelSwitcher"
	PanelWebsiteSecurity   PanelKind = "websiteSecurity"
	PanelWebsiteFeatures   PanelKind = "websiteFeatures"
	PanelWebsiteAppearance PanelKind = "websiteAppearance"
)

// PanelKinds lists every panel in display order.
func PanelKinds() []PanelKind {
	return []PanelKind{
		PanelGeneral, PanelHunt, PanelBattle, PanelOwo, PanelLevel, PanelPray,
		PanelCookie, PanelSell, PanelHuntbot, PanelGems, PanelMisspell, PanelSleep,
		PanelWebhook, PanelDesktop, PanelAudio, PanelMobile, PanelCoinflip, PanelSlots,
		PanelChannelSwitcher, PanelWebsiteSecurity, PanelWebsiteFeatures, PanelWebsiteAppearance,
	}
}

func (k PanelKind) IsValid() bool {
	for _, known := range PanelKinds() {
		if known == k {
			return true
		}
	}
	return false
}

// ImportMode selects how an imported settings file is applied.
type ImportMode string

const (
	// ImportReplace swaps the whole document for the imported one.
	ImportReplace ImportMode = "replace"
	// ImportMerge deep-merges the imported document onto DefaultSettings.
	ImportMerge ImportMode = "merge"
)

func (m ImportMode) IsValid() bool {
	return m == ImportReplace || m == ImportMerge
}

// PanelView is a rendered settings panel.
type PanelView struct {
	Kind   PanelKind `json:"kind"`
	Title  string    `json:"title"`
	Markup string    `json:"markup,omitempty"`
}
