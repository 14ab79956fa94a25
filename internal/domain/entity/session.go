package entity

// AuthSession is the credential pair issued after a confirmed phone code.
type AuthSession struct {
	UID          string `json:"uid"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	IsNewUser    bool   `json:"is_new_user"`
	PhoneNumber  string `json:"phone_number"`
}
