package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

type wardrobeFake struct {
	items    map[string]*domain.ClothingItem
	snapshot []domain.ClothingItem

	createErr  error
	listErr    error
	replaceErr error
	deleteErr  error

	created *domain.ClothingItem

	replacedID     string
	replacedTags   domain.TagSet
	replacedStatus domain.TagStatus

	statusID     string
	statusSet    domain.TagStatus
	statusReason string

	deletedID       string
	deleteImagePath string
}

func (f *wardrobeFake) CreateItem(_ context.Context, item *domain.ClothingItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	copyItem := *item
	f.created = &copyItem
	return nil
}

func (f *wardrobeFake) GetItem(_ context.Context, id string) (*domain.ClothingItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrItemNotFound, "get item", fmt.Errorf("id=%s", id))
	}
	copyItem := *item
	return &copyItem, nil
}

func (f *wardrobeFake) ListItems(context.Context) ([]domain.ClothingItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.snapshot, nil
}

func (f *wardrobeFake) ReplaceTags(_ context.Context, id string, tags domain.TagSet, status domain.TagStatus) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacedID = id
	f.replacedTags = tags
	f.replacedStatus = status
	return nil
}

func (f *wardrobeFake) SetTagStatus(_ context.Context, id string, status domain.TagStatus, reason string) error {
	f.statusID = id
	f.statusSet = status
	f.statusReason = reason
	return nil
}

func (f *wardrobeFake) DeleteItem(_ context.Context, id string) (string, error) {
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	f.deletedID = id
	return f.deleteImagePath, nil
}

type storeFake struct {
	savedKey  string
	savedBody string
	saveErr   error

	openContent string
	openErr     error

	removedKey string
	removeErr  error
}

func (f *storeFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = string(raw)
	return nil
}

func (f *storeFake) Open(context.Context, string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(strings.NewReader(f.openContent)), nil
}

func (f *storeFake) Remove(_ context.Context, key string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removedKey = key
	return nil
}

type queueFake struct {
	publishedID string
	publishErr  error
}

func (f *queueFake) PublishItemUploaded(_ context.Context, itemID string) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.publishedID = itemID
	return nil
}

func (f *queueFake) SubscribeItemUploaded(context.Context, func(context.Context, domain.ItemUploadedEvent) error) error {
	return errors.New("not implemented")
}

type taggerFake struct {
	tags  domain.TagSet
	err   error
	calls int
}

func (f *taggerFake) TagImage(context.Context, *domain.ClothingItem) (domain.TagSet, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tags, nil
}

type selectorFake struct {
	ids         []string
	err         error
	calls       int
	gotOccasion string
	gotSnapshot int
}

func (f *selectorFake) SelectOutfit(_ context.Context, occasion, _ string, snapshot []domain.ClothingItem) ([]string, error) {
	f.calls++
	f.gotOccasion = occasion
	f.gotSnapshot = len(snapshot)
	if f.err != nil {
		return nil, f.err
	}
	return f.ids, nil
}

type requestLogFake struct {
	appended  []domain.UserRequest
	appendErr error
}

func (f *requestLogFake) Append(_ context.Context, record *domain.UserRequest) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, *record)
	return nil
}

func (f *requestLogFake) ListRecent(context.Context, int) ([]domain.UserRequest, error) {
	return nil, errors.New("not implemented")
}

type outfitRepoFake struct {
	created   *domain.Outfit
	createErr error
}

func (f *outfitRepoFake) CreateOutfit(_ context.Context, outfit *domain.Outfit) error {
	if f.createErr != nil {
		return f.createErr
	}
	copyOutfit := *outfit
	f.created = &copyOutfit
	return nil
}

func (f *outfitRepoFake) GetOutfit(context.Context, string) (*domain.Outfit, error) {
	return nil, errors.New("not implemented")
}

func (f *outfitRepoFake) ListOutfits(context.Context) ([]domain.Outfit, error) {
	return nil, errors.New("not implemented")
}
