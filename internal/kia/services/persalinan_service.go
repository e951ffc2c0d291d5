package services

import (
	"database/sql"
	"time"

	"github.com/puskesmas/kia-backend/internal/kia/models"
	"github.com/puskesmas/kia-backend/internal/workflow"
)

type PersalinanService struct {
	DB *sql.DB
}

func NewPersalinanService(db *sql.DB) *PersalinanService {
	return &PersalinanService{DB: db}
}

func (s *PersalinanService) fetchRef(id int) (workflow.RecordRef, error) {
	var ref workflow.RecordRef
	var status string
	query := `
		SELECT ps.Status_Verifikasi, ps.ID_Tempat_Praktik, tp.ID_User, tp.ID_Desa
		FROM Persalinan ps
		JOIN Tempat_Praktik tp ON ps.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
		WHERE ps.ID_Persalinan = ?
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

// Create menyimpan catatan partus baru. Sub-record keadaan ibu dan bayi
// disimpan flat di baris yang sama karena tidak punya identitas sendiri.
func (s *PersalinanService) Create(actor workflow.Actor, req models.PersalinanRequest) (int64, error) {
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

	query := `
		INSERT INTO Persalinan
			(ID_Pasien, ID_Tempat_Praktik, Tanggal_Partus, Gravida, Para, Abortus,
			 Vit_K, HB_0, Vit_A_Bufas,
			 Ibu_Hidup, Ibu_Baik, Ibu_HAP, Ibu_Partus_Lama, Ibu_Pre_Eklamsi,
			 Bayi_BB, Bayi_PB, Bayi_Jenis_Kelamin, Bayi_Hidup, Bayi_Asfiksia, Bayi_RDS,
			 Bayi_Cacat_Bawaan, Bayi_Keterangan_Cacat, Catatan,
			 Status_Verifikasi, Revisi_Ke, Created_At)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'PENDING', 0, ?)
	`
	ibu := req.KeadaanIbu
	bayi := req.KeadaanBayi
	result, err := s.DB.Exec(query,
		req.PasienID, practiceID, req.TanggalPartus, req.Gravida, req.Para, req.Abortus,
		req.VitK, req.HB0, req.VitABufas,
		ibu.Hidup, ibu.Baik, ibu.HAP, ibu.PartusLama, ibu.PreEklamsi,
		bayi.BB, bayi.PB, bayi.JenisKelamin, bayi.Hidup, bayi.Asfiksia, bayi.RDS,
		bayi.CacatBawaan, nullString(bayi.KeteranganCacat), req.Catatan,
		time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *PersalinanService) List(actor workflow.Actor, filter ListFilter) ([]models.Persalinan, error) {
	if !workflow.CanViewKind(workflow.KindPersalinan, actor) {
		return nil, workflow.Forbiddenf("role ini tidak memiliki akses data klinis")
	}
	filter.normalize()

	query := `
		SELECT ps.ID_Persalinan, ps.ID_Pasien, p.Nama, ps.ID_Tempat_Praktik,
			ps.Tanggal_Partus, ps.Gravida, ps.Para, ps.Abortus,
			ps.Vit_K, ps.HB_0, ps.Vit_A_Bufas,
			ps.Ibu_Hidup, ps.Ibu_Baik, ps.Ibu_HAP, ps.Ibu_Partus_Lama, ps.Ibu_Pre_Eklamsi,
			ps.Bayi_BB, ps.Bayi_PB, ps.Bayi_Jenis_Kelamin, ps.Bayi_Hidup, ps.Bayi_Asfiksia,
			ps.Bayi_RDS, ps.Bayi_Cacat_Bawaan, ps.Bayi_Keterangan_Cacat, ps.Catatan,
			ps.Status_Verifikasi, ps.Alasan_Penolakan, ps.Verified_By, ps.Verified_At, ps.Revisi_Ke
		FROM Persalinan ps
		JOIN Pasien p ON ps.ID_Pasien = p.ID_Pasien
		JOIN Tempat_Praktik tp ON ps.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
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
		query += " AND ps.Status_Verifikasi = ?"
		args = append(args, string(status))
	}
	if filter.Month != 0 {
		query += " AND MONTH(ps.Tanggal_Partus) = ?"
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		query += " AND YEAR(ps.Tanggal_Partus) = ?"
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
	query += " ORDER BY ps.Tanggal_Partus DESC, ps.ID_Persalinan DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Persalinan
	for rows.Next() {
		m, err := scanPersalinan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	return result, rows.Err()
}

func scanPersalinan(rows *sql.Rows) (*models.Persalinan, error) {
	var m models.Persalinan
	var keteranganCacat, catatan, alasan sql.NullString
	var verifiedBy sql.NullInt64
	var verifiedAt sql.NullTime

	if err := rows.Scan(&m.ID, &m.PasienID, &m.NamaPasien, &m.PracticeID,
		&m.TanggalPartus, &m.Gravida, &m.Para, &m.Abortus,
		&m.VitK, &m.HB0, &m.VitABufas,
		&m.KeadaanIbu.Hidup, &m.KeadaanIbu.Baik, &m.KeadaanIbu.HAP, &m.KeadaanIbu.PartusLama, &m.KeadaanIbu.PreEklamsi,
		&m.KeadaanBayi.BB, &m.KeadaanBayi.PB, &m.KeadaanBayi.JenisKelamin, &m.KeadaanBayi.Hidup, &m.KeadaanBayi.Asfiksia,
		&m.KeadaanBayi.RDS, &m.KeadaanBayi.CacatBawaan, &keteranganCacat, &catatan,
		&m.StatusVerifikasi, &alasan, &verifiedBy, &verifiedAt, &m.RevisiKe); err != nil {
		return nil, err
	}
	if keteranganCacat.Valid {
		m.KeadaanBayi.KeteranganCacat = keteranganCacat.String
	}
	if catatan.Valid {
		m.Catatan = catatan.String
	}
	applyVerifikasi(&m.Verifikasi, alasan, verifiedBy, verifiedAt)
	return &m, nil
}

func (s *PersalinanService) GetByID(actor workflow.Actor, id int) (*models.Persalinan, error) {
	if !workflow.CanViewKind(workflow.KindPersalinan, actor) {
		return nil, workflow.Forbiddenf("role ini tidak memiliki akses data klinis")
	}

	query := `
		SELECT ps.ID_Persalinan, ps.ID_Pasien, p.Nama, ps.ID_Tempat_Praktik,
			ps.Tanggal_Partus, ps.Gravida, ps.Para, ps.Abortus,
			ps.Vit_K, ps.HB_0, ps.Vit_A_Bufas,
			ps.Ibu_Hidup, ps.Ibu_Baik, ps.Ibu_HAP, ps.Ibu_Partus_Lama, ps.Ibu_Pre_Eklamsi,
			ps.Bayi_BB, ps.Bayi_PB, ps.Bayi_Jenis_Kelamin, ps.Bayi_Hidup, ps.Bayi_Asfiksia,
			ps.Bayi_RDS, ps.Bayi_Cacat_Bawaan, ps.Bayi_Keterangan_Cacat, ps.Catatan,
			ps.Status_Verifikasi, ps.Alasan_Penolakan, ps.Verified_By, ps.Verified_At, ps.Revisi_Ke,
			tp.Nama, tp.ID_User, tp.ID_Desa
		FROM Persalinan ps
		JOIN Pasien p ON ps.ID_Pasien = p.ID_Pasien
		JOIN Tempat_Praktik tp ON ps.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
		WHERE ps.ID_Persalinan = ?
	`
	var m models.Persalinan
	var keteranganCacat, catatan, alasan sql.NullString
	var verifiedBy sql.NullInt64
	var verifiedAt sql.NullTime
	tpRef := models.TempatPraktikRef{}

	err := s.DB.QueryRow(query, id).Scan(&m.ID, &m.PasienID, &m.NamaPasien, &m.PracticeID,
		&m.TanggalPartus, &m.Gravida, &m.Para, &m.Abortus,
		&m.VitK, &m.HB0, &m.VitABufas,
		&m.KeadaanIbu.Hidup, &m.KeadaanIbu.Baik, &m.KeadaanIbu.HAP, &m.KeadaanIbu.PartusLama, &m.KeadaanIbu.PreEklamsi,
		&m.KeadaanBayi.BB, &m.KeadaanBayi.PB, &m.KeadaanBayi.JenisKelamin, &m.KeadaanBayi.Hidup, &m.KeadaanBayi.Asfiksia,
		&m.KeadaanBayi.RDS, &m.KeadaanBayi.CacatBawaan, &keteranganCacat, &catatan,
		&m.StatusVerifikasi, &alasan, &verifiedBy, &verifiedAt, &m.RevisiKe,
		&tpRef.Nama, &tpRef.UserID, &tpRef.VillageID)
	if err == sql.ErrNoRows {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if keteranganCacat.Valid {
		m.KeadaanBayi.KeteranganCacat = keteranganCacat.String
	}
	if catatan.Valid {
		m.Catatan = catatan.String
	}
	applyVerifikasi(&m.Verifikasi, alasan, verifiedBy, verifiedAt)
	tpRef.PracticeID = m.PracticeID
	m.TempatPraktik = &tpRef
	return &m, nil
}

func (s *PersalinanService) Update(actor workflow.Actor, id int, req models.PersalinanRequest) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	effect, err := workflow.AuthorizeUpdate(workflow.KindPersalinan, actor, ref)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ibu := req.KeadaanIbu
	bayi := req.KeadaanBayi
	query := `
		UPDATE Persalinan SET
			ID_Pasien = ?, Tanggal_Partus = ?, Gravida = ?, Para = ?, Abortus = ?,
			Vit_K = ?, HB_0 = ?, Vit_A_Bufas = ?,
			Ibu_Hidup = ?, Ibu_Baik = ?, Ibu_HAP = ?, Ibu_Partus_Lama = ?, Ibu_Pre_Eklamsi = ?,
			Bayi_BB = ?, Bayi_PB = ?, Bayi_Jenis_Kelamin = ?, Bayi_Hidup = ?, Bayi_Asfiksia = ?,
			Bayi_RDS = ?, Bayi_Cacat_Bawaan = ?, Bayi_Keterangan_Cacat = ?, Catatan = ?,
			Status_Verifikasi = ?,
			Alasan_Penolakan = IF(?, NULL, Alasan_Penolakan),
			Verified_By = IF(?, NULL, Verified_By),
			Verified_At = IF(?, NULL, Verified_At),
			Revisi_Ke = Revisi_Ke + ?
		WHERE ID_Persalinan = ? AND Status_Verifikasi = ?
	`
	increment := 0
	if effect.IncrementRevisi {
		increment = 1
	}
	result, err := s.DB.Exec(query,
		req.PasienID, req.TanggalPartus, req.Gravida, req.Para, req.Abortus,
		req.VitK, req.HB0, req.VitABufas,
		ibu.Hidup, ibu.Baik, ibu.HAP, ibu.PartusLama, ibu.PreEklamsi,
		bayi.BB, bayi.PB, bayi.JenisKelamin, bayi.Hidup, bayi.Asfiksia,
		bayi.RDS, bayi.CacatBawaan, nullString(bayi.KeteranganCacat), req.Catatan,
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

// Delete membuang catatan partus beserta sub-record kondisi ibu/bayi yang
// tersimpan flat di baris yang sama.
func (s *PersalinanService) Delete(actor workflow.Actor, id int) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	if err := workflow.AuthorizeDelete(actor, ref); err != nil {
		return err
	}

	result, err := s.DB.Exec(
		"DELETE FROM Persalinan WHERE ID_Persalinan = ? AND Status_Verifikasi IN ('PENDING','REJECTED')", id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *PersalinanService) Verify(actor workflow.Actor, id int, req models.VerifyRequest) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	decision, err := workflow.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	if err := workflow.AuthorizeVerify(workflow.KindPersalinan, actor, ref, decision, req.Alasan); err != nil {
		return err
	}

	result, err := s.DB.Exec(`
		UPDATE Persalinan
		SET Status_Verifikasi = ?, Alasan_Penolakan = ?, Verified_By = ?, Verified_At = ?
		WHERE ID_Persalinan = ? AND Status_Verifikasi = 'PENDING'
	`, string(decision), rejectionReason(decision, req.Alasan), actorUserID(actor), time.Now(), id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
