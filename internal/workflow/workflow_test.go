package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puskesmas/kia-backend/pkg/utils"
)

func claimsFor(userID int, role, position string, villageID, practiceID int) *utils.Claims {
	return &utils.Claims{
		UserID:     userID,
		Role:       role,
		Position:   position,
		VillageID:  villageID,
		PracticeID: practiceID,
	}
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"PENDING", "APPROVED", "REJECTED"} {
		s, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.True(t, s.Valid())
	}
	_, err := ParseStatus("DRAFT")
	require.ErrorIs(t, err, ErrValidation)
}

// P3: menolak tanpa alasan gagal dengan ValidationError.
func TestDecision(t *testing.T) {
	require.NoError(t, Decision(StatusApproved, ""))
	require.NoError(t, Decision(StatusApproved, "catatan opsional"))
	require.NoError(t, Decision(StatusRejected, "data tidak lengkap"))
	require.ErrorIs(t, Decision(StatusRejected, ""), ErrValidation)
	require.ErrorIs(t, Decision(StatusPending, ""), ErrValidation)
}

func TestIsOwnerFallback(t *testing.T) {
	bp := BidanPraktik{UserID: 1, PracticeID: 10}

	// Relasi tempat praktik ter-expand: cocokkan pemilik.
	assert.True(t, IsOwner(bp, RecordRef{OwnerUserID: 1, PracticeID: 99}))
	assert.False(t, IsOwner(bp, RecordRef{OwnerUserID: 2, PracticeID: 10}))

	// Payload flat tanpa relasi: jatuh ke foreign key tempat praktik.
	assert.True(t, IsOwner(bp, RecordRef{PracticeID: 10}))
	assert.False(t, IsOwner(bp, RecordRef{PracticeID: 11}))
	assert.False(t, IsOwner(BidanPraktik{UserID: 3}, RecordRef{}))

	assert.False(t, IsOwner(BidanDesa{UserID: 1, VillageID: 2}, RecordRef{OwnerUserID: 1}))
	assert.False(t, IsOwner(Admin{}, RecordRef{OwnerUserID: 1}))
}

func TestAuthorizeCreate(t *testing.T) {
	require.NoError(t, AuthorizeCreate(BidanPraktik{UserID: 1, PracticeID: 10}))
	// Skenario 5: admin tidak dapat membuat data klinis apapun.
	require.ErrorIs(t, AuthorizeCreate(Admin{}), ErrForbidden)
	require.ErrorIs(t, AuthorizeCreate(BidanDesa{UserID: 2, VillageID: 1}), ErrForbidden)
	require.ErrorIs(t, AuthorizeCreate(BidanKoordinator{UserID: 3}), ErrForbidden)
}

func TestAuthorizeUpdate(t *testing.T) {
	owner := BidanPraktik{UserID: 1, PracticeID: 10}
	other := BidanPraktik{UserID: 2, PracticeID: 20}

	// P4: revisi atas data REJECTED kembali ke PENDING, alasan dibersihkan,
	// revisi_ke naik satu.
	eff, err := AuthorizeUpdate(KindKehamilan, owner, RecordRef{Status: StatusRejected, OwnerUserID: 1})
	require.NoError(t, err)
	assert.Equal(t, UpdateEffect{NewStatus: StatusPending, IncrementRevisi: true, ClearAlasan: true}, eff)

	// Edit selagi PENDING hanya untuk jenis health data lama, tanpa
	// menaikkan revisi.
	eff, err = AuthorizeUpdate(KindHealthData, owner, RecordRef{Status: StatusPending, OwnerUserID: 1})
	require.NoError(t, err)
	assert.Equal(t, UpdateEffect{NewStatus: StatusPending}, eff)

	_, err = AuthorizeUpdate(KindKehamilan, owner, RecordRef{Status: StatusPending, OwnerUserID: 1})
	require.ErrorIs(t, err, ErrForbidden)

	// P2: APPROVED final.
	_, err = AuthorizeUpdate(KindKehamilan, owner, RecordRef{Status: StatusApproved, OwnerUserID: 1})
	require.ErrorIs(t, err, ErrStateConflict)

	_, err = AuthorizeUpdate(KindKehamilan, other, RecordRef{Status: StatusRejected, OwnerUserID: 1})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeDelete(t *testing.T) {
	owner := BidanPraktik{UserID: 1, PracticeID: 10}

	require.NoError(t, AuthorizeDelete(owner, RecordRef{Status: StatusPending, OwnerUserID: 1}))
	require.NoError(t, AuthorizeDelete(owner, RecordRef{Status: StatusRejected, OwnerUserID: 1}))

	// P2: data APPROVED tidak pernah bisa dihapus.
	err := AuthorizeDelete(owner, RecordRef{Status: StatusApproved, OwnerUserID: 1})
	require.ErrorIs(t, err, ErrStateConflict)

	err = AuthorizeDelete(BidanDesa{UserID: 5, VillageID: 1}, RecordRef{Status: StatusPending, OwnerUserID: 1})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeVerify(t *testing.T) {
	desa := BidanDesa{UserID: 5, VillageID: 3}
	pending := RecordRef{Status: StatusPending, OwnerUserID: 1, VillageID: 3}

	require.NoError(t, AuthorizeVerify(KindKehamilan, desa, pending, StatusApproved, ""))
	require.NoError(t, AuthorizeVerify(KindKehamilan, desa, pending, StatusRejected, "data tidak lengkap"))

	require.ErrorIs(t, AuthorizeVerify(KindKehamilan, desa, pending, StatusRejected, ""), ErrValidation)

	// Verifikasi hanya atas data PENDING.
	approved := RecordRef{Status: StatusApproved, OwnerUserID: 1, VillageID: 3}
	require.ErrorIs(t, AuthorizeVerify(KindKehamilan, desa, approved, StatusApproved, ""), ErrStateConflict)
	rejected := RecordRef{Status: StatusRejected, OwnerUserID: 1, VillageID: 3}
	require.ErrorIs(t, AuthorizeVerify(KindKehamilan, desa, rejected, StatusApproved, ""), ErrStateConflict)

	// Skenario 6: bidan desa tidak boleh memverifikasi data desa lain,
	// koordinator boleh.
	otherVillage := RecordRef{Status: StatusPending, OwnerUserID: 2, VillageID: 4}
	require.ErrorIs(t, AuthorizeVerify(KindKehamilan, desa, otherVillage, StatusApproved, ""), ErrForbidden)
	require.NoError(t, AuthorizeVerify(KindKehamilan, BidanKoordinator{UserID: 6}, otherVillage, StatusApproved, ""))

	require.ErrorIs(t, AuthorizeVerify(KindKehamilan, BidanPraktik{UserID: 1, PracticeID: 10}, pending, StatusApproved, ""), ErrForbidden)
	require.ErrorIs(t, AuthorizeVerify(KindKehamilan, Admin{}, pending, StatusApproved, ""), ErrForbidden)
}

// Skenario 1-4 spec: siklus lengkap create → reject → revisi → approve yang
// dijalankan lewat guard, memastikan urutan efeknya konsisten.
func TestLifecycleScenario(t *testing.T) {
	praktik := BidanPraktik{UserID: 1, PracticeID: 10}
	desa := BidanDesa{UserID: 5, VillageID: 3}

	// Buat: PENDING, revisi 0, boleh dihapus pemilik.
	require.NoError(t, AuthorizeCreate(praktik))
	rec := RecordRef{Status: StatusPending, PracticeID: 10, OwnerUserID: 1, VillageID: 3}
	revisi := 0
	require.NoError(t, AuthorizeDelete(praktik, rec))

	// Tolak dengan alasan.
	require.NoError(t, AuthorizeVerify(KindKehamilan, desa, rec, StatusRejected, "data tidak lengkap"))
	rec.Status = StatusRejected

	// Revisi: kembali PENDING, revisi naik jadi 1.
	eff, err := AuthorizeUpdate(KindKehamilan, praktik, rec)
	require.NoError(t, err)
	rec.Status = eff.NewStatus
	if eff.IncrementRevisi {
		revisi++
	}
	assert.Equal(t, StatusPending, rec.Status)
	assert.Equal(t, 1, revisi)

	// Setujui, lalu semua mutasi gagal.
	require.NoError(t, AuthorizeVerify(KindKehamilan, desa, rec, StatusApproved, ""))
	rec.Status = StatusApproved
	require.ErrorIs(t, AuthorizeDelete(praktik, rec), ErrStateConflict)
	_, err = AuthorizeUpdate(KindKehamilan, praktik, rec)
	require.ErrorIs(t, err, ErrStateConflict)
	require.ErrorIs(t, AuthorizeVerify(KindKehamilan, desa, rec, StatusApproved, ""), ErrStateConflict)
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, 400, HTTPStatus(Validationf("x")))
	assert.Equal(t, 403, HTTPStatus(Forbiddenf("x")))
	assert.Equal(t, 404, HTTPStatus(ErrNotFound))
	assert.Equal(t, 409, HTTPStatus(Conflictf("x")))
	assert.Equal(t, 500, HTTPStatus(assert.AnError))
}
