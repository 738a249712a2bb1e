package constants

// Chat va Context konstantalari
const (
	// DefaultMaxContextSize chat tarixida saqlanadigan max xabarlar soni
	DefaultMaxContextSize = 60

	// DefaultMaxHistoryMessages AI ga yuboriladigan max xabarlar
	DefaultMaxHistoryMessages = 10
)

// Tanlash konstantalari
const (
	// CandidateLimit Selector ga beriladigan max tovarlar soni (har toifa)
	CandidateLimit = 30

	// SuggestionLimit AI taklif yo'liga beriladigan max tovarlar soni,
	// prompt hajmini cheklash uchun CandidateLimit dan kichik
	SuggestionLimit = 20

	// PSUSafetyMarginW blok quvvati GPU talabidan kamida shuncha vatt
	// yuqori bo'lishi kerak
	PSUSafetyMarginW = 150

	// RatioMin va RatioMax CPU:GPU narx balansi oralig'i (1:1.2 - 1:1.5)
	RatioMin = 1.2
	RatioMax = 1.5

	// HighBudgetThreshold shu summadan yuqori byudjetda kandidatlar
	// qimmatidan arzoniga saralanadi
	HighBudgetThreshold = 500000

	// FallbackSuggestionLimit toifa topilmaganda ko'rsatiladigan
	// tovarlar soni
	FallbackSuggestionLimit = 5
)

// AI Model konstantalari
const (
	// GeminiModelName Gemini AI model nomi
	GeminiModelName = "gemini-2.5-flash"

	// AITemperature AI javob aniqlik darajasi (0.0-1.0)
	AITemperature = 0.3

	// AITopK Top-K sampling parametri
	AITopK = 20

	// AITopP Top-P sampling parametri
	AITopP = 0.9

	// MaxRetries AI ga so'rov yuborish uchun max urinishlar
	MaxRetries = 3

	// RetryDelay har bir urinish o'rtasidagi kutish vaqti (soniya)
	RetryDelay = 10
)
