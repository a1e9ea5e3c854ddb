package types

// Thread is one floss color in a user's catalogue.
type Thread struct {
	ID    uint   `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Owned bool   `json:"owned"`
}

// ThreadInput carries the replaceable fields of a thread. It is used for
// create, full-replace update and import.
type ThreadInput struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Owned bool   `json:"owned"`
}
