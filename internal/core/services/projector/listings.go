package projector

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

var tableCommands = []string{"hunt", "battle", "owo", "pray", "curse", "daily", "sell"}

const (
	timelineEmpty = "No recent activity"
	petsEmpty     = "No Pets"
	petsEmptyHint = "Start hunting to collect pets!"
)

func commandTable(snap domain.Snapshot, now time.Time) *domain.CommandTable {
	table := &domain.CommandTable{Rows: make([]domain.CommandRow, 0, len(tableCommands))}
	for _, name := range tableCommands {
		c := snap.Command(name)
		rate := "0.0%"
		if c.Count > 0 {
			rate = formatPercent(float64(c.Success) / float64(c.Count) * 100)
		}
		table.Rows = append(table.Rows, domain.CommandRow{
			Command:  name,
			Name:     capitalize(name),
			Count:    FormatNumber(c.Count),
			Success:  FormatNumber(c.Success),
			Fail:     FormatNumber(c.Fail()),
			Rate:     rate,
			Currency: FormatNumber(c.Currency),
			LastUsed: FormatTimeAgo(c.LastUsed, now),
		})
	}
	return table
}

func timeline(snap domain.Snapshot) *domain.Timeline {
	acts := snap.Activities()
	tl := &domain.Timeline{Items: make([]domain.TimelineItem, 0, len(acts))}
	for _, a := range acts {
		kind := a.Type
		if kind == "" {
			kind = "info"
		}
		tl.Items = append(tl.Items, domain.TimelineItem{
			Time:  a.Time,
			Text:  a.Text,
			Class: "event-" + kind,
		})
	}
	if len(tl.Items) == 0 {
		tl.Empty = timelineEmpty
	}
	return tl
}

func petRoster(snap domain.Snapshot) *domain.PetRoster {
	pets := snap.Pets()
	roster := &domain.PetRoster{Cards: make([]domain.PetCard, 0, len(pets))}
	for _, pet := range pets {
		exp := "0"
		if pet.MaxExperience > 0 {
			exp = strconv.FormatFloat(float64(pet.Experience)/float64(pet.MaxExperience)*100, 'f', 1, 64)
		}
		roster.Cards = append(roster.Cards, domain.PetCard{
			Name:       pet.Name,
			Level:      fmt.Sprintf("Level %d", pet.Level),
			Experience: exp,
			Attack:     fmt.Sprintf("ATK: %d", pet.Attack),
			Defense:    fmt.Sprintf("DEF: %d", pet.Defense),
		})
	}
	if len(roster.Cards) == 0 {
		roster.EmptyTitle = petsEmpty
		roster.EmptyHint = petsEmptyHint
	}
	return roster
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
