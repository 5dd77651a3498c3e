package services

import "errors"

// Messages on these errors are shown to users as-is.
var (
	ErrNameRequired       = errors.New("이름을 입력해주세요")
	ErrInvalidPIN         = errors.New("비밀번호는 숫자 4자리여야 합니다")
	ErrDuplicateName      = errors.New("이미 등록된 이름입니다")
	ErrInvalidCredentials = errors.New("이름 또는 비밀번호가 올바르지 않습니다")
	ErrRecordNotFound     = errors.New("기록을 찾을 수 없습니다")
	ErrPINMismatch        = errors.New("비밀번호가 맞지 않습니다")
	ErrTooManyPhotos      = errors.New("사진은 최대 4장까지 등록 가능합니다")
)
