package constants

const (
	//分頁
	DefaultPagingSize int = 6
	DefaultPaging     int = 1
	//商品列表上限 (get-product 不分頁時)
	CatalogListLimit int = 12
	//相關商品數量上限
	RelatedProductLimit int = 3
	//商品圖片大小上限
	MaxPhotoSize int64 = 1 << 20
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
)

type TokenDurationHour int

const (
	AccessTokenDuration TokenDurationHour = 24 * 7
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)
