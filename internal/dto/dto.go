package dto

// Typed request/response bodies for every endpoint. Handlers bind into
// these instead of reading loose maps.

type CreateUserRequest struct {
	FirstName  string `json:"firstName" form:"firstName"`
	LastName   string `json:"lastName" form:"lastName"`
	Email      string `json:"email" form:"email"`
	UserName   string `json:"userName" form:"userName"`
	Password   string `json:"password" form:"password"`
	Address    string `json:"address" form:"address"`
	PostalCode string `json:"postalCode" form:"postalCode"`
	ContactNo  string `json:"contactNo" form:"contactNo"`
}

type UpdateUserRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Address    *string `json:"address"`
	PostalCode *string `json:"postalCode"`
	ContactNo  *string `json:"contactNo"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Auth      bool   `json:"auth"`
	Token     string `json:"token"`
	UserID    uint   `json:"userId"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expiresIn"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"`
}

type RecoverPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" form:"token"`
	Password string `json:"password" form:"password"`
}

type ProductRequest struct {
	ProductName        string  `json:"productName" form:"productName"`
	ProductDescription string  `json:"productDescription" form:"productDescription"`
	Quantity           int     `json:"quantity" form:"quantity"`
	Price              float64 `json:"price" form:"price"`
	Availability       string  `json:"availability" form:"availability"`
	Type               string  `json:"type" form:"type"`
	Discount           float64 `json:"discount" form:"discount"`
}

type AddToCartRequest struct {
	ProductID uint `json:"_id" form:"_id"`
	Quantity  int  `json:"quantity" form:"quantity"`
}

type OrderItemInput struct {
	Product  uint    `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
}

type PlaceOrderRequest struct {
	Items          []OrderItemInput `json:"items"`
	Total          float64          `json:"total"`
	PaymentMethod  string           `json:"paymentMethod"`
	PaymentStatus  string           `json:"paymentStatus"`
	TransactionID  string           `json:"transactionId"`
	PayableOrderID string           `json:"payableOrderId"`
	InvoiceID      string           `json:"invoiceId"`
	ProofImageURL  string           `json:"-"`
	ProofPdfURL    string           `json:"-"`
}

type UpdateOrderRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

// PaymentWebhookPayload is the body the Payable gateway posts to
// /api/orders/payment-notify.
type PaymentWebhookPayload struct {
	PayableTransactionID string `json:"payableTransactionId"`
	PaymentMethod        string `json:"paymentMethod"`
	PayableOrderID       string `json:"payableOrderId"`
	StatusMessage        string `json:"statusMessage"`
	PaymentType          int    `json:"paymentType"`
	PaymentScheme        string `json:"paymentScheme"`
	TxType               string `json:"txType"`
}

type WebhookResponse struct {
	Success              bool   `json:"success"`
	Message              string `json:"message"`
	Processed            *bool  `json:"processed,omitempty"`
	OrderID              uint   `json:"orderId,omitempty"`
	PayableTransactionID string `json:"payableTransactionId,omitempty"`
}

type CreateReviewRequest struct {
	Comment   string `json:"comment" form:"comment"`
	Rating    int    `json:"rating" form:"rating"`
	ProductID uint   `json:"productId" form:"productId"`
}

type UpdateReviewRequest struct {
	Comment string `json:"comment" form:"comment"`
	Rating  int    `json:"rating" form:"rating"`
}

type ReplyRequest struct {
	Message string `json:"message" form:"message"`
}

type ReviewSummary struct {
	TotalReviews  int64         `json:"totalReviews"`
	AverageRating float64       `json:"averageRating"`
	Breakdown     map[int]int64 `json:"breakdown"`
}

type SubmitApplicationRequest struct {
	FullName            string `json:"fullName" form:"fullName"`
	Email               string `json:"email" form:"email"`
	Phone               string `json:"phone" form:"phone"`
	RoleAppliedFor      string `json:"roleAppliedFor" form:"roleAppliedFor"`
	Position            string `json:"position" form:"position"`
	LinkedIn            string `json:"linkedIn" form:"linkedIn"`
	MotivationStatement string `json:"motivationStatement" form:"motivationStatement"`
	CoverLetter         string `json:"coverLetter" form:"coverLetter"`
	VideoURL            string `json:"videoUrl" form:"videoUrl"`
	VideoType           string `json:"videoType" form:"videoType"`
	ConsentGiven        bool   `json:"consentGiven" form:"consentGiven"`
}

type UpdateApplicationStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type InvoiceRequest struct {
	OrderID       uint    `json:"orderId"`
	Date          string  `json:"date"`
	DueDate       string  `json:"dueDate"`
	Total         float64 `json:"total"`
	PaymentStatus string  `json:"paymentStatus"`
}

type RecipeRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Ingredients string `json:"ingredients" form:"ingredients"` // comma separated
	Steps       string `json:"steps" form:"steps"`             // semicolon separated
}

type ChatRequest struct {
	Message string   `json:"message"`
	History []string `json:"history,omitempty"`
}

type ChatResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}
