package services

import (
	"database/sql"
	"time"

	"github.com/puskesmas/kia-backend/internal/kia/models"
	"github.com/puskesmas/kia-backend/internal/workflow"
)

type KehamilanService struct {
	DB *sql.DB
}

func NewKehamilanService(db *sql.DB) *KehamilanService {
	return &KehamilanService{DB: db}
}

// fetchRef mengambil potongan data yang dibutuhkan guard workflow.
func (s *KehamilanService) fetchRef(id int) (workflow.RecordRef, error) {
	var ref workflow.RecordRef
	var status string
	query := `
		SELECT k.Status_Verifikasi, k.ID_Tempat_Praktik, tp.ID_User, tp.ID_Desa
		FROM Pemeriksaan_Kehamilan k
		JOIN Tempat_Praktik tp ON k.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
		WHERE k.ID_Pemeriksaan = ?
	`
	err := s.DB.QueryRow(query, id).Scan(&status, &ref.PracticeID, &ref.OwnerUserID, &ref.VillageID)
	if err == sql.ErrNoRows {
		return ref, workflow.ErrNotFound
	}
	if err != nil {
		return ref, err
	}
	ref.Status = workflow.Status(status)
	return ref, nil
}

// Create menyimpan pemeriksaan baru dengan status PENDING dan revisi 0.
func (s *KehamilanService) Create(actor workflow.Actor, req models.KehamilanRequest) (int64, error) {
	if err := workflow.AuthorizeCreate(actor); err != nil {
		return 0, err
	}
	if err := req.Validate(); err != nil {
		return 0, err
	}
	practiceID, err := resolvePracticeID(s.DB, actor, req.PracticeID)
	if err != nil {
		return 0, err
	}

	var exists int
	err = s.DB.QueryRow("SELECT ID_Pasien FROM Pasien WHERE ID_Pasien = ?", req.PasienID).Scan(&exists)
	if err == sql.ErrNoRows {
		return 0, workflow.Validationf("pasien tidak ditemukan")
	}
	if err != nil {
		return 0, err
	}

	ceklab := req.Ceklab
	if ceklab == nil {
		ceklab = &models.CeklabReport{}
	}
	query := `
		INSERT INTO Pemeriksaan_Kehamilan
			(ID_Pasien, ID_Tempat_Praktik, Tanggal, GPA, Umur_Kehamilan, Jenis_Kunjungan,
			 Status_TT, Resti, TD, Lila, BB, Catatan,
			 Golongan_Darah, HB, HIV, HBsAg, Sifilis,
			 Status_Verifikasi, Revisi_Ke, Created_At)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'PENDING', 0, ?)
	`
	result, err := s.DB.Exec(query,
		req.PasienID, practiceID, req.Tanggal, req.GPA, req.UmurKehamilan, req.JenisKunjungan,
		req.StatusTT, req.Resti, req.TD, req.Lila, req.BB, req.Catatan,
		nullString(ceklab.GolonganDarah), ceklab.HB, ceklab.HIV, ceklab.HBsAg, ceklab.Sifilis,
		time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// List mengembalikan pemeriksaan sesuai lingkup aktor dan filter.
func (s *KehamilanService) List(actor workflow.Actor, filter ListFilter) ([]models.PemeriksaanKehamilan, error) {
	if !workflow.CanViewKind(workflow.KindKehamilan, actor) {
		return nil, workflow.Forbiddenf("role ini tidak memiliki akses data klinis")
	}
	filter.normalize()

	query := `
		SELECT k.ID_Pemeriksaan, k.ID_Pasien, p.Nama, k.ID_Tempat_Praktik,
			k.Tanggal, k.GPA, k.Umur_Kehamilan, k.Jenis_Kunjungan, k.Status_TT,
			k.Resti, k.TD, k.Lila, k.BB, k.Catatan,
			k.Status_Verifikasi, k.Alasan_Penolakan, k.Verified_By, k.Verified_At, k.Revisi_Ke
		FROM Pemeriksaan_Kehamilan k
		JOIN Pasien p ON k.ID_Pasien = p.ID_Pasien
		JOIN Tempat_Praktik tp ON k.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
		WHERE 1=1
	`
	var args []interface{}

	scope, scopeArgs, err := recordScope(actor)
	if err != nil {
		return nil, err
	}
	query += scope
	args = append(args, scopeArgs...)

	if filter.Status != "" {
		status, err := workflow.ParseStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		query += " AND k.Status_Verifikasi = ?"
		args = append(args, string(status))
	}
	if filter.Month != 0 {
		query += " AND MONTH(k.Tanggal) = ?"
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		query += " AND YEAR(k.Tanggal) = ?"
		args = append(args, filter.Year)
	}
	if filter.VillageID != 0 {
		query += " AND tp.ID_Desa = ?"
		args = append(args, filter.VillageID)
	}
	if filter.Search != "" {
		query += " AND p.Nama LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}
	query += " ORDER BY k.Tanggal DESC, k.ID_Pemeriksaan DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.PemeriksaanKehamilan
	for rows.Next() {
		var m models.PemeriksaanKehamilan
		var lila, bb sql.NullFloat64
		var catatan, alasan sql.NullString
		var verifiedBy sql.NullInt64
		var verifiedAt sql.NullTime

		if err := rows.Scan(&m.ID, &m.PasienID, &m.NamaPasien, &m.PracticeID,
			&m.Tanggal, &m.GPA, &m.UmurKehamilan, &m.JenisKunjungan, &m.StatusTT,
			&m.Resti, &m.TD, &lila, &bb, &catatan,
			&m.StatusVerifikasi, &alasan, &verifiedBy, &verifiedAt, &m.RevisiKe); err != nil {
			return nil, err
		}
		if lila.Valid {
			m.Lila = &lila.Float64
		}
		if bb.Valid {
			m.BB = &bb.Float64
		}
		if catatan.Valid {
			m.Catatan = catatan.String
		}
		applyVerifikasi(&m.Verifikasi, alasan, verifiedBy, verifiedAt)
		result = append(result, m)
	}
	return result, rows.Err()
}

// GetByID mengembalikan detail pemeriksaan beserta relasi tempat praktik.
func (s *KehamilanService) GetByID(actor workflow.Actor, id int) (*models.PemeriksaanKehamilan, error) {
	if !workflow.CanViewKind(workflow.KindKehamilan, actor) {
		return nil, workflow.Forbiddenf("role ini tidak memiliki akses data klinis")
	}

	query := `
		SELECT k.ID_Pemeriksaan, k.ID_Pasien, p.Nama, k.ID_Tempat_Praktik,
			k.Tanggal, k.GPA, k.Umur_Kehamilan, k.Jenis_Kunjungan, k.Status_TT,
			k.Resti, k.TD, k.Lila, k.BB, k.Catatan,
			k.Golongan_Darah, k.HB, k.HIV, k.HBsAg, k.Sifilis,
			k.Status_Verifikasi, k.Alasan_Penolakan, k.Verified_By, k.Verified_At, k.Revisi_Ke,
			tp.Nama, tp.ID_User, tp.ID_Desa
		FROM Pemeriksaan_Kehamilan k
		JOIN Pasien p ON k.ID_Pasien = p.ID_Pasien
		JOIN Tempat_Praktik tp ON k.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
		WHERE k.ID_Pemeriksaan = ?
	`
	var m models.PemeriksaanKehamilan
	var lila, bb, hb sql.NullFloat64
	var catatan, alasan, golDarah sql.NullString
	var hiv, hbsag, sifilis sql.NullBool
	var verifiedBy sql.NullInt64
	var verifiedAt sql.NullTime
	tpRef := models.TempatPraktikRef{}

	err := s.DB.QueryRow(query, id).Scan(&m.ID, &m.PasienID, &m.NamaPasien, &m.PracticeID,
		&m.Tanggal, &m.GPA, &m.UmurKehamilan, &m.JenisKunjungan, &m.StatusTT,
		&m.Resti, &m.TD, &lila, &bb, &catatan,
		&golDarah, &hb, &hiv, &hbsag, &sifilis,
		&m.StatusVerifikasi, &alasan, &verifiedBy, &verifiedAt, &m.RevisiKe,
		&tpRef.Nama, &tpRef.UserID, &tpRef.VillageID)
	if err == sql.ErrNoRows {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if lila.Valid {
		m.Lila = &lila.Float64
	}
	if bb.Valid {
		m.BB = &bb.Float64
	}
	if catatan.Valid {
		m.Catatan = catatan.String
	}
	if golDarah.Valid || hb.Valid || hiv.Valid || hbsag.Valid || sifilis.Valid {
		ceklab := &models.CeklabReport{GolonganDarah: golDarah.String}
		if hb.Valid {
			ceklab.HB = &hb.Float64
		}
		if hiv.Valid {
			ceklab.HIV = &hiv.Bool
		}
		if hbsag.Valid {
			ceklab.HBsAg = &hbsag.Bool
		}
		if sifilis.Valid {
			ceklab.Sifilis = &sifilis.Bool
		}
		m.Ceklab = ceklab
	}
	applyVerifikasi(&m.Verifikasi, alasan, verifiedBy, verifiedAt)
	tpRef.PracticeID = m.PracticeID
	m.TempatPraktik = &tpRef
	return &m, nil
}

// Update dipakai untuk edit maupun revisi: payload ditimpa, dan jika status
// sebelumnya REJECTED maka status kembali PENDING dengan revisi_ke +1 dan
// alasan penolakan dibersihkan. Payload identik tetap diterima.
func (s *KehamilanService) Update(actor workflow.Actor, id int, req models.KehamilanRequest) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	effect, err := workflow.AuthorizeUpdate(workflow.KindKehamilan, actor, ref)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ceklab := req.Ceklab
	if ceklab == nil {
		ceklab = &models.CeklabReport{}
	}
	query := `
		UPDATE Pemeriksaan_Kehamilan SET
			ID_Pasien = ?, Tanggal = ?, GPA = ?, Umur_Kehamilan = ?, Jenis_Kunjungan = ?,
			Status_TT = ?, Resti = ?, TD = ?, Lila = ?, BB = ?, Catatan = ?,
			Golongan_Darah = ?, HB = ?, HIV = ?, HBsAg = ?, Sifilis = ?,
			Status_Verifikasi = ?,
			Alasan_Penolakan = IF(?, NULL, Alasan_Penolakan),
			Verified_By = IF(?, NULL, Verified_By),
			Verified_At = IF(?, NULL, Verified_At),
			Revisi_Ke = Revisi_Ke + ?
		WHERE ID_Pemeriksaan = ? AND Status_Verifikasi = ?
	`
	increment := 0
	if effect.IncrementRevisi {
		increment = 1
	}
	result, err := s.DB.Exec(query,
		req.PasienID, req.Tanggal, req.GPA, req.UmurKehamilan, req.JenisKunjungan,
		req.StatusTT, req.Resti, req.TD, req.Lila, req.BB, req.Catatan,
		nullString(ceklab.GolonganDarah), ceklab.HB, ceklab.HIV, ceklab.HBsAg, ceklab.Sifilis,
		string(effect.NewStatus),
		effect.ClearAlasan, effect.ClearAlasan, effect.ClearAlasan,
		increment,
		id, string(ref.Status),
	)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete menghapus data yang belum disetujui. Klausa status menjaga race
// dengan verifikasi yang berjalan bersamaan.
func (s *KehamilanService) Delete(actor workflow.Actor, id int) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	if err := workflow.AuthorizeDelete(actor, ref); err != nil {
		return err
	}

	result, err := s.DB.Exec(
		"DELETE FROM Pemeriksaan_Kehamilan WHERE ID_Pemeriksaan = ? AND Status_Verifikasi IN ('PENDING','REJECTED')", id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Verify menyetujui atau menolak data PENDING.
func (s *KehamilanService) Verify(actor workflow.Actor, id int, req models.VerifyRequest) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	decision, err := workflow.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	if err := workflow.AuthorizeVerify(workflow.KindKehamilan, actor, ref, decision, req.Alasan); err != nil {
		return err
	}

	result, err := s.DB.Exec(`
		UPDATE Pemeriksaan_Kehamilan
		SET Status_Verifikasi = ?, Alasan_Penolakan = ?, Verified_By = ?, Verified_At = ?
		WHERE ID_Pemeriksaan = ? AND Status_Verifikasi = 'PENDING'
	`, string(decision), rejectionReason(decision, req.Alasan), actorUserID(actor), time.Now(), id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
