package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanCreate(t *testing.T) {
	assert.True(t, CanCreate(BidanPraktik{UserID: 1, PracticeID: 10}))
	assert.False(t, CanCreate(BidanDesa{UserID: 2, VillageID: 5}))
	assert.False(t, CanCreate(BidanKoordinator{UserID: 3}))
	assert.False(t, CanCreate(Admin{}))
}

func TestCanEdit(t *testing.T) {
	owner := BidanPraktik{UserID: 1, PracticeID: 10}
	other := BidanPraktik{UserID: 2, PracticeID: 20}

	rejected := RecordRef{Status: StatusRejected, PracticeID: 10, OwnerUserID: 1}
	pending := RecordRef{Status: StatusPending, PracticeID: 10, OwnerUserID: 1}
	approved := RecordRef{Status: StatusApproved, PracticeID: 10, OwnerUserID: 1}

	assert.True(t, CanEdit(KindKehamilan, owner, rejected))
	assert.False(t, CanEdit(KindKehamilan, owner, pending))
	assert.False(t, CanEdit(KindKehamilan, owner, approved))
	assert.False(t, CanEdit(KindKehamilan, other, rejected))

	// Jenis health data lama: edit juga boleh selagi PENDING.
	assert.True(t, CanEdit(KindHealthData, owner, pending))
	assert.True(t, CanEdit(KindHealthData, owner, rejected))
	assert.False(t, CanEdit(KindHealthData, owner, approved))
	assert.False(t, CanEdit(KindHealthData, other, pending))
}

func TestCanDelete(t *testing.T) {
	owner := BidanPraktik{UserID: 1, PracticeID: 10}
	other := BidanPraktik{UserID: 2, PracticeID: 20}

	for _, status := range []Status{StatusPending, StatusRejected} {
		rec := RecordRef{Status: status, PracticeID: 10, OwnerUserID: 1}
		assert.True(t, CanDelete(owner, rec), "pemilik harus bisa hapus saat %s", status)
		assert.False(t, CanDelete(other, rec), "bukan pemilik tidak boleh hapus saat %s", status)
	}
	approved := RecordRef{Status: StatusApproved, PracticeID: 10, OwnerUserID: 1}
	assert.False(t, CanDelete(owner, approved))
}

func TestCanVerify(t *testing.T) {
	desa := BidanDesa{UserID: 5, VillageID: 3}
	koordinator := BidanKoordinator{UserID: 6}
	praktik := BidanPraktik{UserID: 1, PracticeID: 10}

	sameVillage := RecordRef{Status: StatusPending, PracticeID: 10, OwnerUserID: 1, VillageID: 3}
	otherVillage := RecordRef{Status: StatusPending, PracticeID: 11, OwnerUserID: 2, VillageID: 4}

	assert.True(t, CanVerify(KindKehamilan, desa, sameVillage))
	assert.False(t, CanVerify(KindKehamilan, desa, otherVillage))
	// Koordinator lintas desa.
	assert.True(t, CanVerify(KindKehamilan, koordinator, sameVillage))
	assert.True(t, CanVerify(KindKehamilan, koordinator, otherVillage))

	// P6: bidan praktik dan admin tidak pernah memverifikasi.
	assert.False(t, CanVerify(KindKehamilan, praktik, sameVillage))
	assert.False(t, CanVerify(KindKehamilan, Admin{}, sameVillage))

	// Health data lama hanya dikenali bidan desa.
	assert.True(t, CanVerify(KindHealthData, desa, sameVillage))
	assert.False(t, CanVerify(KindHealthData, koordinator, sameVillage))
}

func TestCanExport(t *testing.T) {
	assert.True(t, CanExport(BidanKoordinator{UserID: 6}))
	assert.False(t, CanExport(BidanDesa{UserID: 5, VillageID: 3}))
	assert.False(t, CanExport(BidanPraktik{UserID: 1, PracticeID: 10}))
	assert.False(t, CanExport(Admin{}))
}

// P5: aktor lain tidak pernah bisa mengubah atau menghapus data milik orang
// lain, apapun statusnya.
func TestOwnershipExclusivity(t *testing.T) {
	others := []Actor{
		BidanPraktik{UserID: 99, PracticeID: 77},
		BidanDesa{UserID: 5, VillageID: 3},
		BidanKoordinator{UserID: 6},
		Admin{},
	}
	for _, status := range []Status{StatusPending, StatusApproved, StatusRejected} {
		rec := RecordRef{Status: status, PracticeID: 10, OwnerUserID: 1, VillageID: 3}
		for _, a := range others {
			assert.False(t, CanEdit(KindKehamilan, a, rec))
			assert.False(t, CanDelete(a, rec))
		}
	}
}

func TestResolveActor(t *testing.T) {
	a, err := ResolveActor(claimsFor(1, RoleAdmin, "", 0, 0))
	require.NoError(t, err)
	assert.IsType(t, Admin{}, a)

	a, err = ResolveActor(claimsFor(2, RoleUser, PositionBidanPraktik, 0, 10))
	require.NoError(t, err)
	assert.Equal(t, BidanPraktik{UserID: 2, PracticeID: 10}, a)

	a, err = ResolveActor(claimsFor(3, RoleUser, PositionBidanDesa, 4, 0))
	require.NoError(t, err)
	assert.Equal(t, BidanDesa{UserID: 3, VillageID: 4}, a)

	a, err = ResolveActor(claimsFor(4, RoleUser, PositionBidanKoordinator, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, BidanKoordinator{UserID: 4}, a)

	_, err = ResolveActor(claimsFor(5, RoleUser, "perawat", 0, 0))
	require.ErrorIs(t, err, ErrForbidden)

	_, err = ResolveActor(nil)
	require.ErrorIs(t, err, ErrForbidden)
}
