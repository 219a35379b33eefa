package application

import "errors"

var (
	// ErrMissingFields は必須項目が欠けていることを表す
	ErrMissingFields = errors.New("missing fields")
	// ErrInvalidCredentials はメールアドレスまたはパスワードが誤っていることを表す
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken はトークンが不正または期限切れであることを表す
	ErrInvalidToken = errors.New("bad token")
	// ErrUsersStoreUnavailable は利用者ストアが設定されていないことを表す
	ErrUsersStoreUnavailable = errors.New("users store unavailable")
)
