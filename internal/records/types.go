package records

// UserRecord is an entry of the MyRailUsers collection.
type UserRecord struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// SignupRecord is the signup form as stored in MyRailUsers.
type SignupRecord struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// TicketRecord is an entry of the tickets collection.
type TicketRecord struct {
	FullName   string `json:"fullName"`
	TrainName  string `json:"train_name"`
	Price      string `json:"price"`
	Coach      string `json:"coach"`
	Passengers int    `json:"passengers"`
}

type listResponse[T any] struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	Items      []T `json:"items"`
}

type createdRecord struct {
	ID string `json:"id"`
}
