package console

// Relation data types set on table relations.
const (
	DataTypeDataRef = "DATA_REF"
	DataTypeGeoRef  = "GEO_REF"
)

// SystemStatus is the console-wide status payload.
type SystemStatus struct {
	Version         string            `json:"version"                   yaml:"version"`
	Status          string            `json:"status"                    yaml:"status"`
	MaintenanceMode bool              `json:"maintenanceMode"           yaml:"maintenanceMode"`
	Message         string            `json:"message,omitempty"         yaml:"message,omitempty"`
	Features        map[string]bool   `json:"features,omitempty"        yaml:"features,omitempty"`
	Limits          map[string]int64  `json:"limits,omitempty"          yaml:"limits,omitempty"`
	Links           map[string]string `json:"links,omitempty"           yaml:"links,omitempty"`
}

// App is a console application.
type App struct {
	ID        string `json:"id"                  yaml:"id"`
	Name      string `json:"name"                yaml:"name"`
	Created   int64  `json:"created,omitempty"   yaml:"created,omitempty"`
	Owner     string `json:"owner,omitempty"     yaml:"owner,omitempty"`
	Blocked   bool   `json:"blocked,omitempty"   yaml:"blocked,omitempty"`
	ProjectID string `json:"projectId,omitempty" yaml:"projectId,omitempty"`
}

// AppCreateRequest is the payload for creating an application.
type AppCreateRequest struct {
	Name    string `json:"appName"           yaml:"appName"`
	RefCode string `json:"refCode,omitempty" yaml:"refCode,omitempty"`
}

// Column is a table column.
type Column struct {
	Name         string      `json:"name"                   yaml:"name"`
	DataType     string      `json:"dataType"               yaml:"dataType"`
	Required     bool        `json:"required"               yaml:"required"`
	Unique       bool        `json:"unique"                 yaml:"unique"`
	Indexed      bool        `json:"indexed"                yaml:"indexed"`
	DefaultValue interface{} `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// Relation links a table column to another table.
type Relation struct {
	Name                  string `json:"name"                            yaml:"name"`
	ToTableName           string `json:"toTableName"                     yaml:"toTableName"`
	RelationshipType      string `json:"relationshipType,omitempty"      yaml:"relationshipType,omitempty"`
	AutoLoad              bool   `json:"autoLoad"                        yaml:"autoLoad"`
	Required              bool   `json:"required"                        yaml:"required"`
	DataType              string `json:"dataType"                        yaml:"dataType"`
	ParentTableName       string `json:"parentTableName,omitempty"       yaml:"parentTableName,omitempty"`
	CustomRegexpValidator string `json:"customRegexpValidator,omitempty" yaml:"customRegexpValidator,omitempty"`
}

// Table is a data table with its columns and relations.
type Table struct {
	TableID      string     `json:"tableId"      yaml:"tableId"`
	Name         string     `json:"name"         yaml:"name"`
	Columns      []Column   `json:"columns"      yaml:"columns"`
	Relations    []Relation `json:"relations"    yaml:"relations"`
	GeoRelations []Relation `json:"geoRelations" yaml:"geoRelations"`
	System       bool       `json:"system"       yaml:"system"`
}

// TableCreateRequest is the payload for creating a table.
type TableCreateRequest struct {
	Name    string   `json:"name"              yaml:"name"`
	Columns []Column `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// CacheEntry is a normalized cache record. Value is always a string: the
// stored string itself, or the JSON text of any other value.
type CacheEntry struct {
	ObjectID string `json:"objectId" yaml:"objectId"`
	Key      string `json:"key"      yaml:"key"`
	Value    string `json:"value"    yaml:"value"`
	ExpireAt *int64 `json:"expireAt" yaml:"expireAt"`
}

// CacheList is one page of cache entries plus the total count.
type CacheList struct {
	Data      []CacheEntry `json:"data"      yaml:"data"`
	TotalRows int64        `json:"totalRows" yaml:"totalRows"`
}

// CachePutRequest is the payload for storing a cache value.
type CachePutRequest struct {
	Value    interface{} `json:"value"              yaml:"value"`
	ExpireAt *int64      `json:"expireAt,omitempty" yaml:"expireAt,omitempty"`
}

// Counter is an atomic counter. Counters are identified by name, so ObjectID
// always equals Name.
type Counter struct {
	ObjectID string `json:"objectId" yaml:"objectId"`
	Name     string `json:"name"     yaml:"name"`
	Value    int64  `json:"value"    yaml:"value"`
}

// BillingPlan is the subscription plan of an application.
type BillingPlan struct {
	ID          string  `json:"id"                    yaml:"id"`
	Name        string  `json:"name"                  yaml:"name"`
	Price       float64 `json:"price"                 yaml:"price"`
	Period      string  `json:"period,omitempty"      yaml:"period,omitempty"`
	NextBilling int64   `json:"nextBilling,omitempty" yaml:"nextBilling,omitempty"`
}

// Invoice is a billing invoice.
type Invoice struct {
	ID      string  `json:"id"               yaml:"id"`
	Amount  float64 `json:"amount"           yaml:"amount"`
	Status  string  `json:"status"           yaml:"status"`
	Created int64   `json:"created"          yaml:"created"`
	URL     string  `json:"url,omitempty"    yaml:"url,omitempty"`
}

// LoginRequest is the console login payload.
type LoginRequest struct {
	Login    string `json:"login"    yaml:"login"`
	Password string `json:"password" yaml:"password"`
}

// Developer is the account returned by a successful login.
type Developer struct {
	ID        string `json:"id"                  yaml:"id"`
	Email     string `json:"email"               yaml:"email"`
	Name      string `json:"name,omitempty"      yaml:"name,omitempty"`
	AuthKey   string `json:"-"                   yaml:"-"`
	FirstName string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"  yaml:"lastName,omitempty"`
}
