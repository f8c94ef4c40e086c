package marketapi

// Wire types for the public marketplace API. The scraper exports product
// records with human-readable field names, those keys are kept verbatim.

type User struct {
	Id        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type Category struct {
	Name   string `json:"name"`
	Public bool   `json:"public"`
}

type ProductInfo struct {
	Title         string   `json:"Product title"`
	CurrentPrice  string   `json:"Current selling price"`
	OriginalPrice string   `json:"Product original price,omitempty"`
	Tags          []string `json:"Product tag,omitempty"`
	ShippingArea  string   `json:"Shipping area,omitempty"`
	Link          string   `json:"Product link"`
	ReleaseTime   string   `json:"Release time,omitempty"`
	CommodityId   string   `json:"commodityID"`
	Pictures      []string `json:"Product picture list,omitempty"`
	MainImage     string   `json:"Product main image link,omitempty"`
}

type SellerInfo struct {
	Nickname     string `json:"Seller nickname,omitempty"`
	AvatarLink   string `json:"Seller avatar link,omitempty"`
	Signature    string `json:"Seller's personalized signature,omitempty"`
	ItemsSold    string `json:"Seller is selling/Number of items sold,omitempty"`
	CreditRating string `json:"Seller credit rating,omitempty"`
}

type AiAnalysis struct {
	IsRecommended bool   `json:"is_recommended"`
	Reason        string `json:"reason,omitempty"`
}

type Product struct {
	Id             string      `json:"id"`
	CrawlTime      string      `json:"Crawl time"`
	SearchKeywords string      `json:"Search keywords"`
	TaskName       string      `json:"Task name"`
	Info           ProductInfo `json:"Product information"`
	Seller         SellerInfo  `json:"Seller information"`
	AiAnalysis     *AiAnalysis `json:"ai_analysis,omitempty"`
	IsRecommended  *bool       `json:"is_recommended,omitempty"`
	IsFavorited    bool        `json:"is_favorited,omitempty"`
}

type ProductFilter struct {
	Search        string
	MinPrice      *float64
	MaxPrice      *float64
	TaskName      string
	IsRecommended *bool
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}

type PaginatedProducts struct {
	Items      []Product `json:"items"`
	TotalItems int       `json:"total_items"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

type Favorite struct {
	Id           int64  `json:"id"`
	UserId       int64  `json:"user_id"`
	ProductId    string `json:"product_id"`
	TaskName     string `json:"task_name"`
	ProductTitle string `json:"product_title"`
	Price        string `json:"price"`
	ImageUrl     string `json:"image_url,omitempty"`
	ProductLink  string `json:"product_link"`
	CreatedAt    string `json:"created_at"`
}

type FavoriteRequest struct {
	ProductId    string `json:"product_id"`
	TaskName     string `json:"task_name"`
	ProductTitle string `json:"product_title"`
	Price        string `json:"price"`
	ImageUrl     string `json:"image_url,omitempty"`
	ProductLink  string `json:"product_link"`
}

type PaginatedFavorites struct {
	Items []Favorite `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}
