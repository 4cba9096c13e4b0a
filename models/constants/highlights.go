package constants

const (
	HighlightSource = "Azad Studio • Telegram @AzadStudioOfficial"
	HighlightTitle  = "Azad Studio — Today's Highlights"
)

func GetHighlightBullets() []string {
	return []string{
		"Breaking: Key updates from Hyderabad and Telangana",
		"Sports roundup with major wins and transfers",
		"Founder spotlight: Vision and mission for better news",
	}
}

func GetHighlightRomanBullets() []string {
	return []string{
		"AI avatar se aasan tareeqay se news suniye",
		"Har khabar ka 3 point me English summary",
		"Instant translation aur audio playback sab languages me",
	}
}
