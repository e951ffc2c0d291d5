package workflow

// RecordRef adalah potongan data klinis yang dibutuhkan policy: status
// verifikasi plus relasi tempat praktik. Service membangunnya dari hasil
// join ke Tempat_Praktik; field bernilai nol berarti relasinya tidak ikut
// termuat di payload.
type RecordRef struct {
	Status      Status
	PracticeID  int
	OwnerUserID int
	VillageID   int
}

// IsOwner melaporkan apakah actor memiliki data lewat tempat praktiknya.
// Prioritas pada relasi ter-expand (OwnerUserID); payload list/detail yang
// tidak memuat relasi tempat praktik jatuh ke pencocokan foreign key flat.
func IsOwner(actor Actor, rec RecordRef) bool {
	bp, ok := actor.(BidanPraktik)
	if !ok {
		return false
	}
	if rec.OwnerUserID != 0 {
		return rec.OwnerUserID == bp.UserID
	}
	return bp.PracticeID != 0 && bp.PracticeID == rec.PracticeID
}
