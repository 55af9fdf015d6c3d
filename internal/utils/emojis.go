package utils

// GetPillarEmoji returns the display emoji for a daily pillar name.
func GetPillarEmoji(pillarStr string) string {
	switch pillarStr {
	case "Health":
		return "🏃"
	case "Career":
		return "💼"
	case "Mind":
		return "🧠"
	case "Relationships":
		return "🤝"
	case "Finance":
		return "💰"
	case "Environment":
		return "🏠"
	default:
		return "📌"
	}
}

func DoneMark(done bool) string {
	if done {
		return "✅"
	}
	return "⬜"
}
