package settings

import "github.com/lcalzada-xor/duskboard/internal/core/domain"

func toggle(path, label string) Field {
	return Field{Path: path, Label: label, Kind: FieldToggle}
}

func number(path, label string, def ...int64) Field {
	f := Field{Path: path, Label: label, Kind: FieldInt}
	if len(def) > 0 {
		f.Default = def[0]
	}
	return f
}

func text(path, label string) Field {
	return Field{Path: path, Label: label, Kind: FieldText}
}

func cooldown(command string) Field {
	return Field{Path: "commands." + command + ".cooldown", Label: "Cooldown (seconds)", Kind: FieldFloatRange}
}

// enablePanel is a panel whose only control is its feature toggle.
func enablePanel(kind domain.PanelKind, title, path, label string) Panel {
	return Panel{Kind: kind, Title: title, Fields: []Field{toggle(path, label)}}
}

func builtinPanels() []Panel {
	return []Panel{
		generalPanel(),
		{
			Kind:  domain.PanelHunt,
			Title: "Hunt Command Settings",
			Fields: []Field{
				cooldown("hunt"),
				toggle("commands.hunt.useShortForm", "Use Short Form"),
			},
		},
		{
			Kind:  domain.PanelBattle,
			Title: "Battle Command Settings",
			Fields: []Field{
				cooldown("battle"),
				toggle("commands.battle.useShortForm", "Use Short Form"),
			},
		},
		{
			Kind:   domain.PanelOwo,
			Title:  "OwO Command Settings",
			Fields: []Field{cooldown("owo")},
		},
		{
			Kind:  domain.PanelLevel,
			Title: "Level Grinding Settings",
			Fields: []Field{
				cooldown("lvlGrind"),
				toggle("commands.lvlGrind.useQuoteInstead", "Use Quote Instead"),
				number("commands.lvlGrind.minLengthForRandomString", "Random String Min Length"),
				number("commands.lvlGrind.maxLengthForRandomString", "Random String Max Length"),
			},
		},
		enablePanel(domain.PanelPray, "Pray/Curse Settings", "commands.pray.enabled", "Auto Pray/Curse"),
		enablePanel(domain.PanelCookie, "Cookie Settings", "commands.cookie.enabled", "Auto Cookie"),
		enablePanel(domain.PanelSell, "Sell/Sacrifice Settings", "commands.sell.enabled", "Auto Sell/Sacrifice"),
		enablePanel(domain.PanelHuntbot, "HuntBot Settings", "commands.autoHuntBot.enabled", "Auto HuntBot"),
		enablePanel(domain.PanelGems, "Gems Settings", "autoUse.gems.enabled", "Auto Use Gems"),
		enablePanel(domain.PanelMisspell, "Misspelling Settings", "misspell.enabled", "Random Misspelling"),
		enablePanel(domain.PanelSleep, "Random Sleep Settings", "sleep.enabled", "Random Sleep"),
		{
			Kind:  domain.PanelWebhook,
			Title: "Webhook Settings",
			Fields: []Field{
				toggle("webhook.enabled", "Enable Webhook"),
				text("webhook.webhookUrl", "Webhook URL"),
				text("webhook.webhookCaptchaUrl", "Captcha Webhook URL"),
				text("webhook.webhookUserIdToPingOnCaptcha", "User ID to Ping on Captcha"),
				toggle("webhook.webhookUselessLog", "Log Everything"),
			},
		},
		enablePanel(domain.PanelDesktop, "Desktop Notification Settings", "captcha.toastOrPopup.enabled", "Desktop Notifications"),
		enablePanel(domain.PanelAudio, "Audio Notification Settings", "captcha.playAudio.enabled", "Play Audio on Captcha"),
		enablePanel(domain.PanelMobile, "Mobile Notification Settings", "captcha.termux.vibrate.enabled", "Vibrate (Termux)"),
		enablePanel(domain.PanelCoinflip, "Coinflip Settings", "gamble.coinflip.enabled", "Auto Coinflip"),
		enablePanel(domain.PanelSlots, "Slots Settings", "gamble.slots.enabled", "Auto Slots"),
		{
			Kind:  domain.PanelChannelSwitcher,
			Title: "Channel Switcher Settings",
			Fields: []Field{
				{Path: "channel_switcher.switch_interval", Label: "Switch Interval (minutes)", Kind: FieldIntRange, Default: []int64{5, 15}},
				{Path: "channel_switcher.commands_per_switch", Label: "Commands Per Switch", Kind: FieldIntRange, Default: []int64{3, 8}},
				toggle("channel_switcher.smart_switching", "Smart Switching"),
				toggle("channel_switcher.switch_on_slowmode", "Switch on Slowmode"),
				toggle("channel_switcher.avoid_active_channels", "Avoid Active Channels"),
				{Path: "channel_switcher.channels", Label: "Channel IDs (comma separated)", Kind: FieldIntList},
				toggle("channel_switcher.threads.enabled", "Use Threads"),
				number("channel_switcher.threads.parent_channel", "Parent Channel ID", 0),
				{Path: "channel_switcher.threads.thread_ids", Label: "Thread IDs (comma separated)", Kind: FieldIntList},
			},
		},
		{
			Kind:  domain.PanelWebsiteSecurity,
			Title: "Website Security Settings",
			Fields: []Field{
				toggle("website.security.enabled", "Enable Security Features"),
				toggle("website.security.login_required", "Require Login"),
				text("website.security.username", "Username"),
				{Path: "website.security.password", Label: "Password", Kind: FieldPassword},
				toggle("website.security.allow_config_edit", "Allow Config Editing"),
				{Path: "website.security.ip_whitelist", Label: "IP Whitelist (comma separated)", Kind: FieldStringList},
				number("website.security.session_timeout", "Session Timeout (seconds)", 3600),
			},
		},
		{
			Kind:  domain.PanelWebsiteFeatures,
			Title: "Website Features Settings",
			Fields: []Field{
				toggle("website.features.dashboard", "Dashboard Page"),
				toggle("website.features.settings", "Settings Page"),
				toggle("website.features.stats", "Statistics"),
				toggle("website.features.logs", "Logs"),
				toggle("website.features.commands", "Command Controls"),
				toggle("website.features.restart", "Restart Button"),
			},
		},
		{
			Kind:  domain.PanelWebsiteAppearance,
			Title: "Website Appearance Settings",
			Fields: []Field{
				{Path: "website.appearance.theme", Label: "Theme", Kind: FieldSelect, Options: []string{"dark", "light", "purple", "custom"}},
				{Path: "website.appearance.accent_color", Label: "Accent Color", Kind: FieldColor},
				toggle("website.appearance.show_username", "Show Username"),
				toggle("website.appearance.show_avatar", "Show Avatar"),
				{Path: "website.appearance.custom_title", Label: "Custom Title", Kind: FieldText, Hint: "Custom page title for dashboard"},
			},
		},
	}
}

// generalPanel covers every key path on the main settings page.
func generalPanel() Panel {
	return Panel{
		Kind:  domain.PanelGeneral,
		Title: "General Settings",
		Fields: []Field{
			toggle("offlineStatus", "Offline Status"),
			toggle("typingIndicator", "Typing Indicator"),
			toggle("silentTextMessages", "Silent Messages"),
			{Path: "setprefix", Label: "Prefix", Kind: FieldText, Validate: domain.IsValidPrefix},
			toggle("useSlashCommands", "Use Slash Commands"),
			toggle("website.enabled", "Enable Website"),
			number("website.port", "Website Port", 2609),
			number("website.refreshInterval", "Refresh Interval (seconds)", 10),
			toggle("channel_switcher.enabled", "Channel Switcher"),

			toggle("commands.hunt.enabled", "Hunt"),
			toggle("commands.battle.enabled", "Battle"),
			toggle("commands.owo.enabled", "OwO"),
			toggle("commands.lvlGrind.enabled", "Level Grinding"),
			toggle("commands.pray.enabled", "Pray/Curse"),
			toggle("commands.cookie.enabled", "Cookie"),
			toggle("commands.sell.enabled", "Sell/Sacrifice"),
			toggle("commands.autoHuntBot.enabled", "HuntBot"),
			toggle("autoDaily", "Daily"),
			toggle("commands.lottery.enabled", "Lottery"),
			toggle("autoUse.autoLootbox", "Lootbox"),
			toggle("autoUse.autoCrate", "Crate"),
			toggle("autoUse.gems.enabled", "Gems"),

			toggle("misspell.enabled", "Misspelling"),
			toggle("sleep.enabled", "Random Sleep"),
			toggle("webhook.enabled", "Webhook"),
			toggle("captcha.toastOrPopup.enabled", "Desktop Notifications"),
			toggle("captcha.playAudio.enabled", "Audio Notifications"),
			toggle("captcha.termux.vibrate.enabled", "Mobile Vibration"),

			number("gamble.allottedAmount", "Allotted Amount"),
			toggle("gamble.goalSystem.enabled", "Goal System"),
			number("gamble.goalSystem.amount", "Goal Amount"),
			toggle("gamble.coinflip.enabled", "Coinflip"),
			toggle("gamble.slots.enabled", "Slots"),

			text("webhook.webhookUrl", "Webhook URL"),
			text("webhook.webhookCaptchaUrl", "Captcha Webhook URL"),
			text("webhook.webhookUserIdToPingOnCaptcha", "User ID to Ping"),
			toggle("webhook.webhookUselessLog", "Log Everything"),
			text("captcha.notifications.captchaContent", "Captcha Notification"),
			text("captcha.notifications.bannedContent", "Banned Notification"),

			toggle("debug.enabled", "Debug Mode"),
			toggle("debug.logInTextFile", "Log to File"),
			toggle("batteryCheck.enabled", "Battery Check"),
			number("batteryCheck.minPercentage", "Minimum Battery (%)"),
			number("batteryCheck.refreshInterval", "Battery Check Interval (seconds)"),
		},
	}
}
