package models

import "time"

type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RentalID  uint      `json:"rentalId" gorm:"uniqueIndex:idx_rental_user"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_rental_user"`
	CarID     uint      `json:"carId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	User      User      `json:"user" gorm:"foreignKey:UserID"`
}
