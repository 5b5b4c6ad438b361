package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func blobInputs(n int) []BlobInput {
	inputs := make([]BlobInput, 0, n)
	for i := 0; i < n; i++ {
		inputs = append(inputs, BlobInput{
			Reader:      strings.NewReader("img"),
			Size:        3,
			ContentType: "image/png",
			Filename:    "photo.png",
		})
	}
	return inputs
}

func TestUploadSagaCommit(t *testing.T) {
	t.Run("全部上传成功后提交元数据", func(t *testing.T) {
		store := new(mockBlobStore)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("k1", nil).Once()
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("k2", nil).Once()

		saga := NewUploadSaga(store)

		var persisted []BlobRef
		refs, err := saga.Commit(context.Background(), blobInputs(2), func(ctx context.Context, refs []BlobRef) error {
			persisted = refs
			return nil
		})

		assert.NoError(t, err)
		assert.Len(t, refs, 2)
		assert.Equal(t, persisted, refs)
		assert.Equal(t, "k1", refs[0].ObjectKey)
		assert.Equal(t, "bucket/k1", refs[0].URL)
		assert.Equal(t, 0, refs[0].Order)
		assert.Equal(t, 1, refs[1].Order)
		store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("元数据写入失败时补偿删除全部已传对象", func(t *testing.T) {
		store := new(mockBlobStore)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("k1", nil).Once()
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("k2", nil).Once()
		store.On("Remove", mock.Anything, "k1").Return(nil).Once()
		store.On("Remove", mock.Anything, "k2").Return(nil).Once()

		saga := NewUploadSaga(store)

		persistErr := errors.New("db down")
		refs, err := saga.Commit(context.Background(), blobInputs(2), func(ctx context.Context, refs []BlobRef) error {
			return persistErr
		})

		assert.ErrorIs(t, err, persistErr)
		assert.Nil(t, refs)
		store.AssertExpectations(t)
	})

	t.Run("中途上传失败时只补偿已传部分", func(t *testing.T) {
		store := new(mockBlobStore)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("k1", nil).Once()
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("connection reset")).Once()
		store.On("Remove", mock.Anything, "k1").Return(nil).Once()

		saga := NewUploadSaga(store)

		refs, err := saga.Commit(context.Background(), blobInputs(3), func(ctx context.Context, refs []BlobRef) error {
			t.Fatal("persist 不应被调用")
			return nil
		})

		assert.Error(t, err)
		assert.Nil(t, refs)
		store.AssertExpectations(t)
	})

	t.Run("补偿删除失败不覆盖原始错误", func(t *testing.T) {
		store := new(mockBlobStore)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("k1", nil).Once()
		store.On("Remove", mock.Anything, "k1").Return(errors.New("minio down")).Once()

		saga := NewUploadSaga(store)

		persistErr := errors.New("db down")
		_, err := saga.Commit(context.Background(), blobInputs(1), func(ctx context.Context, refs []BlobRef) error {
			return persistErr
		})

		assert.ErrorIs(t, err, persistErr)
		store.AssertExpectations(t)
	})

	t.Run("空批次在任何上传前被拒绝", func(t *testing.T) {
		store := new(mockBlobStore)
		saga := NewUploadSaga(store)

		_, err := saga.Commit(context.Background(), nil, func(ctx context.Context, refs []BlobRef) error {
			return nil
		})

		assert.ErrorIs(t, err, ErrNoImages)
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("超量批次在任何上传前被拒绝", func(t *testing.T) {
		store := new(mockBlobStore)
		saga := NewUploadSaga(store)

		_, err := saga.Commit(context.Background(), blobInputs(11), func(ctx context.Context, refs []BlobRef) error {
			return nil
		})

		assert.ErrorIs(t, err, ErrTooManyImages)
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUploadSagaStoreOne(t *testing.T) {
	t.Run("上传成功返回可用引用", func(t *testing.T) {
		store := new(mockBlobStore)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("images/abc.png", nil).Once()

		saga := NewUploadSaga(store)

		ref, err := saga.StoreOne(context.Background(), blobInputs(1)[0])

		assert.NoError(t, err)
		assert.Equal(t, "images/abc.png", ref.ObjectKey)
		assert.Equal(t, "bucket/images/abc.png", ref.URL)
	})

	t.Run("空文件被拒绝", func(t *testing.T) {
		saga := NewUploadSaga(new(mockBlobStore))

		_, err := saga.StoreOne(context.Background(), BlobInput{Size: 0})

		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("超限文件被拒绝", func(t *testing.T) {
		saga := NewUploadSaga(new(mockBlobStore))

		_, err := saga.StoreOne(context.Background(), BlobInput{Size: 11 * 1024 * 1024})

		assert.ErrorIs(t, err, ErrImageTooLarge)
	})
}

func TestExtOf(t *testing.T) {
	assert.Equal(t, ".png", extOf(BlobInput{Filename: "a.png"}))
	assert.Equal(t, ".jpg", extOf(BlobInput{ContentType: "image/jpeg"}))
	assert.Equal(t, ".webp", extOf(BlobInput{ContentType: "image/webp"}))
	assert.Equal(t, ".bin", extOf(BlobInput{ContentType: "application/octet-stream"}))
	// 文件名扩展名优先于 Content-Type
	assert.Equal(t, ".gif", extOf(BlobInput{Filename: "b.gif", ContentType: "image/png"}))
}
