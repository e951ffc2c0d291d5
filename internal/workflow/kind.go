package workflow

// Kind mendeskripsikan satu jenis data klinis. State machine dan policy
// diimplementasikan sekali; perbedaan antar jenis hanya pada dua override
// warisan modul health data lama.
type Kind struct {
	Name string

	// EditWhilePending mengizinkan pemilik mengedit selagi PENDING.
	// Hanya berlaku untuk jenis health data lama (perilaku self-service
	// sebelum verifikasi); jenis lain hanya bisa edit setelah REJECTED.
	EditWhilePending bool

	// DesaOnlyVerify membatasi verifikasi ke bidan_desa saja.
	// Jenis health data lama tidak mengenal bidan_koordinator.
	DesaOnlyVerify bool
}

var (
	KindKehamilan  = Kind{Name: "pemeriksaan_kehamilan"}
	KindPersalinan = Kind{Name: "persalinan"}
	KindKB         = Kind{Name: "keluarga_berencana"}
	KindImunisasi  = Kind{Name: "imunisasi"}
	KindHealthData = Kind{Name: "health_data", EditWhilePending: true, DesaOnlyVerify: true}
)
