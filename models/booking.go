package models

import (
	"fmt"
	"strings"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusUpcoming  BookingStatus = "upcoming"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Statuses lists every status in tab order.
var Statuses = []BookingStatus{StatusActive, StatusUpcoming, StatusCompleted, StatusCancelled}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusActive, StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether a booking in status s may move to cancelled.
func (s BookingStatus) Cancellable() bool {
	return s == StatusActive || s == StatusUpcoming
}

// Terminal statuses never change again.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return st, nil
}

// RoomType is the kind of room a student books.
type RoomType string

const (
	RoomSharedDormitory RoomType = "Shared Dormitory"
	RoomPrivate         RoomType = "Private Room"
)

var RoomTypes = []RoomType{RoomSharedDormitory, RoomPrivate}

func (r RoomType) Valid() bool {
	return r == RoomSharedDormitory || r == RoomPrivate
}

func ParseRoomType(s string) (RoomType, error) {
	for _, rt := range RoomTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(rt)) {
			return rt, nil
		}
	}
	return "", fmt.Errorf("unknown room type %q", s)
}

type ContactInfo struct {
	FullName   string `json:"fullName" bson:"fullName"`
	Email      string `json:"email" bson:"email"`
	Phone      string `json:"phone" bson:"phone"`
	StudentID  string `json:"studentId,omitempty" bson:"studentId,omitempty"`
	University string `json:"university,omitempty" bson:"university,omitempty"`
}

type Booking struct {
	ID                 string        `json:"id" bson:"id"`
	UserID             string        `json:"userId,omitempty" bson:"userId,omitempty"`
	HostelID           string        `json:"hostelId,omitempty" bson:"hostelId,omitempty"`
	HostelName         string        `json:"hostelName,omitempty" bson:"hostelName,omitempty"`
	RoomType           RoomType      `json:"roomType" bson:"roomType"`
	CheckIn            Date          `json:"checkIn" bson:"checkIn"`
	CheckOut           Date          `json:"checkOut" bson:"checkOut"`
	Status             BookingStatus `json:"status" bson:"status"`
	Price              string        `json:"price,omitempty" bson:"price,omitempty"`
	TotalAmount        string        `json:"totalAmount,omitempty" bson:"totalAmount,omitempty"`
	PaymentStatus      string        `json:"paymentStatus,omitempty" bson:"paymentStatus,omitempty"`
	Contact            ContactInfo   `json:"contact" bson:"contact"`
	SpecialRequests    string        `json:"specialRequests,omitempty" bson:"specialRequests,omitempty"`
	Amenities          []string      `json:"amenities,omitempty" bson:"amenities,omitempty"`
	Rules              []string      `json:"rules,omitempty" bson:"rules,omitempty"`
	BookingDate        Date          `json:"bookingDate" bson:"bookingDate"`
	CreatedAt          int64         `json:"createdAt" bson:"createdAt"`
	CancelledAt        int64         `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	CancellationReason string        `json:"cancellationReason,omitempty" bson:"cancellationReason,omitempty"`
}

// BookingDraft is validated wizard input ready to become a Booking.
type BookingDraft struct {
	UserID          string      `json:"userId,omitempty"`
	HostelID        string      `json:"hostelId,omitempty"`
	RoomType        RoomType    `json:"roomType"`
	CheckIn         Date        `json:"checkIn"`
	CheckOut        Date        `json:"checkOut"`
	Contact         ContactInfo `json:"contact"`
	SpecialRequests string      `json:"specialRequests,omitempty"`
	TotalAmount     string      `json:"totalAmount,omitempty"`
	PaymentStatus   string      `json:"paymentStatus,omitempty"`
}
