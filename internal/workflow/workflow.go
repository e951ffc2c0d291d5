package workflow

// Guard operasi workflow. Service memanggil fungsi ini sebelum menyentuh
// database; error yang keluar sudah bertipe (Forbidden/Validation/Conflict)
// sehingga tidak ada operasi yang gagal secara diam-diam.

// AuthorizeCreate memeriksa hak membuat data klinis baru. Data baru selalu
// lahir PENDING dengan revisi_ke = 0.
func AuthorizeCreate(actor Actor) error {
	if !CanCreate(actor) {
		return Forbiddenf("hanya bidan praktik yang dapat membuat data klinis")
	}
	return nil
}

// UpdateEffect mendeskripsikan efek mekanis sebuah update yang lolos guard.
// Edit atas data REJECTED adalah revisi: status kembali PENDING, alasan
// penolakan dibersihkan, dan revisi_ke bertambah satu. Payload yang tidak
// berubah tetap diterima dan tetap menaikkan revisi_ke.
type UpdateEffect struct {
	NewStatus       Status
	IncrementRevisi bool
	ClearAlasan     bool
}

// AuthorizeUpdate memeriksa hak edit/revisi dan mengembalikan efeknya.
func AuthorizeUpdate(kind Kind, actor Actor, rec RecordRef) (UpdateEffect, error) {
	if !IsOwner(actor, rec) {
		return UpdateEffect{}, Forbiddenf("hanya pemilik data yang dapat mengubah data ini")
	}
	if rec.Status == StatusApproved {
		return UpdateEffect{}, Conflictf("data yang sudah disetujui tidak dapat diubah")
	}
	if !CanEdit(kind, actor, rec) {
		return UpdateEffect{}, Forbiddenf("data berstatus %s tidak dapat diubah", rec.Status)
	}
	if rec.Status == StatusRejected {
		return UpdateEffect{NewStatus: StatusPending, IncrementRevisi: true, ClearAlasan: true}, nil
	}
	return UpdateEffect{NewStatus: rec.Status}, nil
}

// AuthorizeDelete memeriksa hak hapus. Data APPROVED tidak pernah boleh
// dihapus agar jejak audit rekapitulasi tetap utuh.
func AuthorizeDelete(actor Actor, rec RecordRef) error {
	if !IsOwner(actor, rec) {
		return Forbiddenf("hanya pemilik data yang dapat menghapus data ini")
	}
	if rec.Status == StatusApproved {
		return Conflictf("data yang sudah disetujui tidak dapat dihapus")
	}
	return nil
}

// AuthorizeVerify memeriksa hak verifikasi beserta keputusan dan alasannya.
// Verifikasi hanya sah atas data PENDING.
func AuthorizeVerify(kind Kind, actor Actor, rec RecordRef, decision Status, alasan string) error {
	if !CanVerify(kind, actor, rec) {
		return Forbiddenf("anda tidak berwenang memverifikasi data ini")
	}
	if err := Decision(decision, alasan); err != nil {
		return err
	}
	if rec.Status != StatusPending {
		return Conflictf("data berstatus %s, hanya data PENDING yang dapat diverifikasi", rec.Status)
	}
	return nil
}
