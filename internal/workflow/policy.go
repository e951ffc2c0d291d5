package workflow

// Predicate policy murni, seragam untuk kelima jenis data klinis.
// Varian Actor di-switch secara eksplisit agar penambahan posisi baru
// langsung ketahuan di sini.

// CanCreate: hanya bidan_praktik yang membuat data klinis.
func CanCreate(actor Actor) bool {
	_, ok := actor.(BidanPraktik)
	return ok
}

// CanEdit: pemilik boleh mengedit setelah REJECTED. Jenis health data lama
// juga mengizinkan edit selagi PENDING.
func CanEdit(kind Kind, actor Actor, rec RecordRef) bool {
	if !IsOwner(actor, rec) {
		return false
	}
	if rec.Status == StatusRejected {
		return true
	}
	return kind.EditWhilePending && rec.Status == StatusPending
}

// CanDelete: pemilik boleh menghapus selama belum APPROVED.
func CanDelete(actor Actor, rec RecordRef) bool {
	if !IsOwner(actor, rec) {
		return false
	}
	return rec.Status == StatusPending || rec.Status == StatusRejected
}

// CanVerify: bidan_desa terbatas pada desanya sendiri, bidan_koordinator
// lintas desa. Jenis health data lama hanya dikenali bidan_desa.
func CanVerify(kind Kind, actor Actor, rec RecordRef) bool {
	switch a := actor.(type) {
	case BidanDesa:
		return rec.VillageID == 0 || rec.VillageID == a.VillageID
	case BidanKoordinator:
		return !kind.DesaOnlyVerify
	case BidanPraktik, Admin:
		return false
	default:
		return false
	}
}

// CanExport: rekapitulasi dan export laporan hanya untuk bidan_koordinator.
func CanExport(actor Actor) bool {
	_, ok := actor.(BidanKoordinator)
	return ok
}

// CanViewKind: lingkup baca data klinis per aktor. Admin tidak punya akses
// data klinis sama sekali; scoping per desa/praktik diterapkan service di
// klausa WHERE berdasarkan varian aktor.
func CanViewKind(kind Kind, actor Actor) bool {
	switch actor.(type) {
	case BidanPraktik, BidanDesa:
		return true
	case BidanKoordinator:
		return !kind.DesaOnlyVerify
	default:
		return false
	}
}
