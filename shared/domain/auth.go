package domain

type Email = string

// Identity is what the auth provider's authorizer reports for an allowed request.
type Identity struct {
	Email Email
}

// SignInState links the sign-in page to the passcode page. Session is the
// opaque value the provider returned from init and expects back with the OTP.
type SignInState struct {
	Email   Email  `json:"email"`
	Session string `json:"session"`
}
