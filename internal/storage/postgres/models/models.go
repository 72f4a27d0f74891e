package models

import "cinevault/proj/internal/storage/postgres"

type Models struct {
	User     *UserModel
	Favorite *FavoriteModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		User:     &UserModel{db},
		Favorite: &FavoriteModel{db},
	}
}
