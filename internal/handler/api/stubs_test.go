//go:build unit

package api_test

import (
	"context"

	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
)

// Hand-rolled stubs for the usecase ports. Each method delegates to a
// function field so a test can pin exactly the calls it expects; an
// unexpected call panics on the nil field and fails the test loudly.

// markedErr shapes a sentinel the way the use cases hand it up: marked
// onto a concrete cause instead of returned bare.
func markedErr(sentinel error) error {
	return errs.Mark(errs.New("backing lookup failed"), sentinel)
}

type stubBookingCommands struct {
	createFn  func(ctx context.Context, actorID int64, input commands.CreateBookingInput) (*queries.BookingView, error)
	approveFn func(ctx context.Context, ownerID, bookingID int64, approved bool) (*queries.BookingView, error)
}

func (s *stubBookingCommands) Create(ctx context.Context, actorID int64, input commands.CreateBookingInput) (*queries.BookingView, error) {
	return s.createFn(ctx, actorID, input)
}

func (s *stubBookingCommands) Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (*queries.BookingView, error) {
	return s.approveFn(ctx, ownerID, bookingID, approved)
}

type stubBookingQueries struct {
	getFn          func(ctx context.Context, actorID, bookingID int64) (*queries.BookingView, error)
	listByBookerFn func(ctx context.Context, actorID int64, rawState string) ([]*queries.BookingView, error)
	listByOwnerFn  func(ctx context.Context, actorID int64, rawState string) ([]*queries.BookingView, error)
}

func (s *stubBookingQueries) Get(ctx context.Context, actorID, bookingID int64) (*queries.BookingView, error) {
	return s.getFn(ctx, actorID, bookingID)
}

func (s *stubBookingQueries) ListByBooker(ctx context.Context, actorID int64, rawState string) ([]*queries.BookingView, error) {
	return s.listByBookerFn(ctx, actorID, rawState)
}

func (s *stubBookingQueries) ListByOwner(ctx context.Context, actorID int64, rawState string) ([]*queries.BookingView, error) {
	return s.listByOwnerFn(ctx, actorID, rawState)
}

type stubItemCommands struct {
	addFn        func(ctx context.Context, ownerID int64, input commands.AddItemInput) (*commands.ItemResult, error)
	updateFn     func(ctx context.Context, ownerID, itemID int64, input commands.UpdateItemInput) (*commands.ItemResult, error)
	addCommentFn func(ctx context.Context, actorID, itemID int64, text string) (*commands.CommentResult, error)
}

func (s *stubItemCommands) Add(ctx context.Context, ownerID int64, input commands.AddItemInput) (*commands.ItemResult, error) {
	return s.addFn(ctx, ownerID, input)
}

func (s *stubItemCommands) Update(ctx context.Context, ownerID, itemID int64, input commands.UpdateItemInput) (*commands.ItemResult, error) {
	return s.updateFn(ctx, ownerID, itemID, input)
}

func (s *stubItemCommands) AddComment(ctx context.Context, actorID, itemID int64, text string) (*commands.CommentResult, error) {
	return s.addCommentFn(ctx, actorID, itemID, text)
}

type stubItemQueries struct {
	getFn         func(ctx context.Context, itemID int64) (*queries.ItemWithBookingsView, error)
	listByOwnerFn func(ctx context.Context, ownerID int64) ([]*queries.ItemWithBookingsView, error)
	searchFn      func(ctx context.Context, text string) ([]*queries.ItemView, error)
}

func (s *stubItemQueries) Get(ctx context.Context, itemID int64) (*queries.ItemWithBookingsView, error) {
	return s.getFn(ctx, itemID)
}

func (s *stubItemQueries) ListByOwner(ctx context.Context, ownerID int64) ([]*queries.ItemWithBookingsView, error) {
	return s.listByOwnerFn(ctx, ownerID)
}

func (s *stubItemQueries) Search(ctx context.Context, text string) ([]*queries.ItemView, error) {
	return s.searchFn(ctx, text)
}

type stubUserCommands struct {
	createFn func(ctx context.Context, input commands.CreateUserInput) (*commands.UserResult, error)
	updateFn func(ctx context.Context, userID int64, input commands.UpdateUserInput) (*commands.UserResult, error)
	deleteFn func(ctx context.Context, userID int64) error
}

func (s *stubUserCommands) Create(ctx context.Context, input commands.CreateUserInput) (*commands.UserResult, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserCommands) Update(ctx context.Context, userID int64, input commands.UpdateUserInput) (*commands.UserResult, error) {
	return s.updateFn(ctx, userID, input)
}

func (s *stubUserCommands) Delete(ctx context.Context, userID int64) error {
	return s.deleteFn(ctx, userID)
}

type stubUserQueries struct {
	getFn  func(ctx context.Context, userID int64) (*queries.UserView, error)
	listFn func(ctx context.Context) ([]*queries.UserView, error)
}

func (s *stubUserQueries) Get(ctx context.Context, userID int64) (*queries.UserView, error) {
	return s.getFn(ctx, userID)
}

func (s *stubUserQueries) List(ctx context.Context) ([]*queries.UserView, error) {
	return s.listFn(ctx)
}

type stubRequestCommands struct {
	addFn func(ctx context.Context, requestorID int64, description string) (*commands.RequestResult, error)
}

func (s *stubRequestCommands) Add(ctx context.Context, requestorID int64, description string) (*commands.RequestResult, error) {
	return s.addFn(ctx, requestorID, description)
}

type stubRequestQueries struct {
	getFn             func(ctx context.Context, actorID, requestID int64) (*queries.RequestView, error)
	listByRequestorFn func(ctx context.Context, actorID int64) ([]*queries.RequestView, error)
	listAllExceptFn   func(ctx context.Context, actorID int64) ([]*queries.RequestView, error)
}

func (s *stubRequestQueries) Get(ctx context.Context, actorID, requestID int64) (*queries.RequestView, error) {
	return s.getFn(ctx, actorID, requestID)
}

func (s *stubRequestQueries) ListByRequestor(ctx context.Context, actorID int64) ([]*queries.RequestView, error) {
	return s.listByRequestorFn(ctx, actorID)
}

func (s *stubRequestQueries) ListAllExcept(ctx context.Context, actorID int64) ([]*queries.RequestView, error) {
	return s.listAllExceptFn(ctx, actorID)
}
