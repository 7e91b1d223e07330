package game

import "fmt"

// EventType enumerates all observable battle events.
type EventType int

const (
	EventHit EventType = iota
	EventBlocked
	EventPierce
	EventDefense
	EventMultiHit
	EventCounter
	EventJam
	EventParry
	EventToken
	EventSpecial
	EventEther
	EventSoulBreak
	EventVictory
	EventDefeat
	EventRevive
	EventTurnStart
	EventTurnEnd
	EventInfo
)

func (e EventType) String() string {
	switch e {
	case EventHit:
		return "Hit"
	case EventBlocked:
		return "Blocked"
	case EventPierce:
		return "Pierce"
	case EventDefense:
		return "Defense"
	case EventMultiHit:
		return "MultiHit"
	case EventCounter:
		return "Counter"
	case EventJam:
		return "Jam"
	case EventParry:
		return "Parry"
	case EventToken:
		return "Token"
	case EventSpecial:
		return "Special"
	case EventEther:
		return "Ether"
	case EventSoulBreak:
		return "SoulBreak"
	case EventVictory:
		return "Victory"
	case EventDefeat:
		return "Defeat"
	case EventRevive:
		return "Revive"
	case EventTurnStart:
		return "TurnStart"
	case EventTurnEnd:
		return "TurnEnd"
	case EventInfo:
		return "Info"
	}
	return "Unknown"
}

// Event is one entry of the battle log. It carries enough structured data
// for a presentation layer to render without re-deriving the damage formula.
type Event struct {
	Type  EventType `json:"type"`
	Actor ActorTag  `json:"actor,omitempty"`
	Card  string    `json:"card,omitempty"`

	Amount   int `json:"amount,omitempty"`
	Absorbed int `json:"absorbed,omitempty"`
	Hits     int `json:"hits,omitempty"`
	Crits    int `json:"crits,omitempty"`
	// Cancelled counts the hits truncated by a jam.
	Cancelled int `json:"cancelled,omitempty"`

	TargetHPBefore int `json:"target_hp_before,omitempty"`
	TargetHPAfter  int `json:"target_hp_after,omitempty"`

	Token  string `json:"token,omitempty"`
	Stacks int    `json:"stacks,omitempty"`

	Message string `json:"message,omitempty"`
}

// Describe renders the event as a short narration line, or "" for events
// with nothing worth telling the player.
func (e Event) Describe() string {
	switch e.Type {
	case EventHit, EventPierce:
		return fmt.Sprintf("%s's %s dealt %d damage.", e.Actor, e.Card, e.Amount)
	case EventBlocked:
		if e.Amount > 0 {
			return fmt.Sprintf("%s's %s dealt %d damage (%d blocked).", e.Actor, e.Card, e.Amount, e.Absorbed)
		}
		return fmt.Sprintf("%s's %s was fully blocked.", e.Actor, e.Card)
	case EventDefense:
		return fmt.Sprintf("%s gained %d block.", e.Actor, e.Amount)
	case EventMultiHit:
		return fmt.Sprintf("%s's %s landed %d hits for %d damage.", e.Actor, e.Card, e.Hits, e.Amount)
	case EventCounter:
		return fmt.Sprintf("%s countered for %d.", e.Actor, e.Amount)
	case EventJam:
		return fmt.Sprintf("%s's %s jammed after %d hits.", e.Actor, e.Card, e.Hits)
	case EventParry:
		return fmt.Sprintf("%s parried the blow.", e.Actor)
	case EventEther:
		if e.Amount > 0 {
			return fmt.Sprintf("%s gathered %d ether.", e.Actor, e.Amount)
		}
		return ""
	case EventSoulBreak, EventVictory, EventDefeat, EventRevive:
		return e.Message
	default:
		return ""
	}
}
