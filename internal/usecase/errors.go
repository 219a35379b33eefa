package usecase

import "errors"

var (
	// ErrInvalidInput は入力値が不正であることを表す
	ErrInvalidInput = errors.New("invalid input")
	// ErrFetchFailed はドキュメントストアからの取得に失敗したことを表す
	ErrFetchFailed = errors.New("fetch failed")
)
