package utils

const (
	// Payment methods
	MethodPix    = "pix"
	MethodCredit = "credit"
	MethodDebit  = "debit"

	// Payment statuses
	PaymentPending    = "pending"
	PaymentProcessing = "processing"
	PaymentCompleted  = "completed"
	PaymentFailed     = "failed"
	PaymentRefunded   = "refunded"

	// Booking statuses (kept in pt-BR, matching the product)
	BookingAwaitingGroup = "Aguardando Grupo"
	BookingConfirmed     = "Confirmada"
	BookingCompleted     = "Realizada"
	BookingCancelled     = "Cancelada"

	// Excursion statuses
	ExcursionSoldOut       = "Esgotada"
	ExcursionAwaitingGroup = "Aguardando Grupo"
	ExcursionConfirmed     = "Confirmada"

	// Withdrawal sides
	SideOrganizer = "organizer"
	SidePlatform  = "platform"

	// Excursion categories
	CategoryTourism   = "turismo"
	CategoryBeach     = "praia"
	CategoryShopping  = "compras"
	CategoryAdventure = "aventura"
	CategoryCultural  = "cultural"

	// Commission taken by the platform on every payment
	PlatformCommissionRate = 0.15

	// Booking code generation
	BookingCodeCharset    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	BookingCodeRandLength = 4

	// HTTP status messages
	ErrInvalidRequest   = "Invalid request"
	ErrFailedToStore    = "Failed to store data"
	ErrFailedToRetrieve = "Failed to retrieve data"

	// Precision for monetary calculations
	MoneyPrecision = 100.0
)

// ValidCategories lists the excursion categories accepted on create/update.
var ValidCategories = []string{
	CategoryTourism,
	CategoryBeach,
	CategoryShopping,
	CategoryAdventure,
	CategoryCultural,
}

// ValidMethods lists the accepted payment methods.
var ValidMethods = []string{MethodPix, MethodCredit, MethodDebit}
