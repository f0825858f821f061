package domain

// Key paths read and written by the general settings page.
var GeneralPaths = []string{
	"offlineStatus",
	"typingIndicator",
	"silentTextMessages",
	"setprefix",
	"useSlashCommands",
	"website.enabled",
	"website.port",
	"website.refreshInterval",
	"channel_switcher.enabled",
	"commands.hunt.enabled",
	"commands.battle.enabled",
	"commands.owo.enabled",
	"commands.lvlGrind.enabled",
	"commands.pray.enabled",
	"commands.cookie.enabled",
	"commands.sell.enabled",
	"commands.autoHuntBot.enabled",
	"autoDaily",
	"commands.lottery.enabled",
	"autoUse.autoLootbox",
	"autoUse.autoCrate",
	"autoUse.gems.enabled",
	"misspell.enabled",
	"sleep.enabled",
	"webhook.enabled",
	"captcha.toastOrPopup.enabled",
	"captcha.playAudio.enabled",
	"captcha.termux.vibrate.enabled",
	"gamble.allottedAmount",
	"gamble.goalSystem.enabled",
	"gamble.goalSystem.amount",
	"gamble.coinflip.enabled",
	"gamble.slots.enabled",
	"webhook.webhookUrl",
	"webhook.webhookCaptchaUrl",
	"webhook.webhookUserIdToPingOnCaptcha",
	"webhook.webhookUselessLog",
	"captcha.notifications.captchaContent",
	"captcha.notifications.bannedContent",
	"debug.enabled",
	"debug.logInTextFile",
	"batteryCheck.enabled",
	"batteryCheck.minPercentage",
	"batteryCheck.refreshInterval",
}

func DefaultWebsiteSecurity() map[string]any {
	return map[string]any{
		"enabled":           false,
		"login_required":    false,
		"username":          "admin",
		"password":          "changeme",
		"allow_config_edit": true,
		"ip_whitelist":      []any{},
		"session_timeout":   float64(3600),
	}
}

func DefaultWebsiteFeatures() map[string]any {
	return map[string]any{
		"dashboard": true,
		"settings":  true,
		"stats":     true,
		"logs":      true,
		"commands":  true,
		"restart":   true,
	}
}

func DefaultWebsiteAppearance() map[string]any {
	return map[string]any{
		"theme":         "dark",
		"accent_color":  "#70af87",
		"show_username": true,
		"show_avatar":   true,
		"custom_title":  "OwO Dusk Dashboard",
	}
}

func DefaultChannelSwitcher() map[string]any {
	return map[string]any{
		"enabled":               false,
		"channels":              []any{},
		"switch_interval":       []any{float64(5), float64(15)},
		"commands_per_switch":   []any{float64(3), float64(8)},
		"smart_switching":       false,
		"switch_on_slowmode":    false,
		"avoid_active_channels": false,
		"threads": map[string]any{
			"enabled":        false,
			"parent_channel": float64(0),
			"thread_ids":     []any{},
		},
	}
}

// EnsureWebsiteDefaults fills website.security, website.features and
// website.appearance when the bot's document lacks them.
func (s Settings) EnsureWebsiteDefaults() {
	s.SetDefault("website.security", DefaultWebsiteSecurity())
	s.SetDefault("website.features", DefaultWebsiteFeatures())
	s.SetDefault("website.appearance", DefaultWebsiteAppearance())
}

func command(enabled bool, cooldown ...float64) map[string]any {
	c := map[string]any{"enabled": enabled}
	if len(cooldown) == 2 {
		c["cooldown"] = []any{cooldown[0], cooldown[1]}
	}
	return c
}

// DefaultSettings is the full document skeleton used when merging imports
// and by the mock bot.
func DefaultSettings() Settings {
	hunt := command(true, 15, 17)
	hunt["useShortForm"] = true
	battle := command(true, 15, 17)
	battle["useShortForm"] = true
	lvl := command(false, 60, 80)
	lvl["useQuoteInstead"] = false
	lvl["minLengthForRandomString"] = float64(5)
	lvl["maxLengthForRandomString"] = float64(20)

	s := Settings{
		"offlineStatus":      false,
		"typingIndicator":    false,
		"silentTextMessages": false,
		"setprefix":          "owo",
		"useSlashCommands":   false,
		"autoDaily":          true,
		"website": map[string]any{
			"enabled":         true,
			"port":            float64(2609),
			"refreshInterval": float64(10),
		},
		"commands": map[string]any{
			"hunt":        hunt,
			"battle":      battle,
			"owo":         command(true, 10, 12),
			"lvlGrind":    lvl,
			"pray":        command(true, 300, 310),
			"cookie":      command(false),
			"sell":        command(false),
			"autoHuntBot": command(false),
			"lottery":     command(false),
		},
		"autoUse": map[string]any{
			"autoLootbox": false,
			"autoCrate":   false,
			"gems":        map[string]any{"enabled": false},
		},
		"misspell": map[string]any{"enabled": false},
		"sleep":    map[string]any{"enabled": true},
		"webhook": map[string]any{
			"enabled":                      false,
			"webhookUrl":                   "",
			"webhookCaptchaUrl":            "",
			"webhookUserIdToPingOnCaptcha": "",
			"webhookUselessLog":            false,
		},
		"captcha": map[string]any{
			"toastOrPopup": map[string]any{"enabled": true},
			"playAudio":    map[string]any{"enabled": false},
			"termux":       map[string]any{"vibrate": map[string]any{"enabled": false}},
			"notifications": map[string]any{
				"captchaContent": "Captcha detected!",
				"bannedContent":  "Account banned!",
			},
		},
		"gamble": map[string]any{
			"allottedAmount": float64(0),
			"goalSystem":     map[string]any{"enabled": false, "amount": float64(0)},
			"coinflip":       map[string]any{"enabled": false},
			"slots":          map[string]any{"enabled": false},
		},
		"debug": map[string]any{
			"enabled":       false,
			"logInTextFile": false,
		},
		"batteryCheck": map[string]any{
			"enabled":         false,
			"minPercentage":   float64(20),
			"refreshInterval": float64(60),
		},
		"channel_switcher": DefaultChannelSwitcher(),
	}
	s.EnsureWebsiteDefaults()
	return s
}
