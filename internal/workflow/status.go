package workflow

// Status verifikasi sebuah data klinis.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid melaporkan apakah s salah satu dari tiga status yang dikenal.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus menerima string status dari request/database.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", Validationf("status verifikasi %q tidak dikenal", raw)
	}
	return s, nil
}

// Decision memeriksa keputusan verifikasi: APPROVED atau REJECTED dengan
// alasan wajib. Alasan pada APPROVED diabaikan (boleh kosong).
func Decision(status Status, alasan string) error {
	switch status {
	case StatusApproved:
		return nil
	case StatusRejected:
		if alasan == "" {
			return Validationf("alasan_penolakan wajib diisi saat menolak data")
		}
		return nil
	default:
		return Validationf("keputusan verifikasi harus APPROVED atau REJECTED")
	}
}
