package models

import (
	"context"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsernameAndEmail(ctx context.Context, username, email string) (*User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

func (r *GormRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	user.Email = NormalizeEmail(user.Email)
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, &Error{Kind: ErrConflict, Message: "username or email already in use", Err: err}
		}
		return nil, StoreError("create user", err, "")
	}
	return user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*User, error) {
	if id == 0 {
		return nil, NotFound("user not found")
	}
	var user User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, StoreError("get user", err, "user not found")
	}
	return &user, nil
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("username = ?", StringTrim(username)).First(&user).Error
	if err != nil {
		return nil, StoreError("get user", err, "no account found for this username")
	}
	return &user, nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, StoreError("get user", err, "no account found for this email")
	}
	return &user, nil
}

func (r *GormRepo) GetUserByUsernameAndEmail(ctx context.Context, username, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("username = ? AND email = ?", StringTrim(username), NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, StoreError("get user", err, "no account matches this username and email")
	}
	return &user, nil
}

func (r *GormRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if res.Error != nil {
		return StoreError("update password", res.Error, "user not found")
	}
	if res.RowsAffected == 0 {
		return NotFound("user not found")
	}
	return nil
}
