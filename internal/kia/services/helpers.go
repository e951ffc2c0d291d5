package services

import (
	"database/sql"

	"github.com/puskesmas/kia-backend/internal/kia/models"
	"github.com/puskesmas/kia-backend/internal/workflow"
)

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// applyVerifikasi menyalin kolom verifikasi nullable ke sub-bentuk model.
func applyVerifikasi(v *models.Verifikasi, alasan sql.NullString, verifiedBy sql.NullInt64, verifiedAt sql.NullTime) {
	if alasan.Valid {
		s := alasan.String
		v.AlasanPenolakan = &s
	}
	if verifiedBy.Valid {
		id := int(verifiedBy.Int64)
		v.VerifiedBy = &id
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		v.VerifiedAt = &t
	}
}

// requireAffected menerjemahkan update/delete kondisional yang tidak
// mengenai baris menjadi StateConflict: guard sudah lolos, berarti status
// berubah di antara pembacaan dan penulisan.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return workflow.Conflictf("status data berubah, muat ulang dan coba lagi")
	}
	return nil
}

// rejectionReason: alasan hanya disimpan saat menolak; catatan pada
// persetujuan bersifat informasional dan tidak disimpan.
func rejectionReason(decision workflow.Status, alasan string) interface{} {
	if decision == workflow.StatusRejected {
		return alasan
	}
	return nil
}

func actorUserID(actor workflow.Actor) int {
	switch a := actor.(type) {
	case workflow.BidanPraktik:
		return a.UserID
	case workflow.BidanDesa:
		return a.UserID
	case workflow.BidanKoordinator:
		return a.UserID
	default:
		return 0
	}
}
