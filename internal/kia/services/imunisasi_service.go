package services

import (
	"database/sql"
	"time"

	"github.com/puskesmas/kia-backend/internal/kia/models"
	"github.com/puskesmas/kia-backend/internal/workflow"
)

type ImunisasiService struct {
	DB *sql.DB
}

func NewImunisasiService(db *sql.DB) *ImunisasiService {
	return &ImunisasiService{DB: db}
}

func (s *ImunisasiService) fetchRef(id int) (workflow.RecordRef, error) {
	var ref workflow.RecordRef
	var status string
	query := `
		SELECT im.Status_Verifikasi, im.ID_Tempat_Praktik, tp.ID_User, tp.ID_Desa
		FROM Imunisasi im
		JOIN Tempat_Praktik tp ON im.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
		WHERE im.ID_Imunisasi = ?
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

func (s *ImunisasiService) Create(actor workflow.Actor, req models.ImunisasiRequest) (int64, error) {
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
		INSERT INTO Imunisasi
			(ID_Pasien, ID_Tempat_Praktik, Tgl_Imunisasi, Jenis_Imunisasi,
			 Berat_Badan, Suhu_Badan, Nama_Orangtua, Catatan,
			 Status_Verifikasi, Revisi_Ke, Created_At)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'PENDING', 0, ?)
	`
	result, err := s.DB.Exec(query,
		req.PasienID, practiceID, req.TglImunisasi, req.JenisImunisasi,
		req.BeratBadan, req.SuhuBadan, req.NamaOrangtua, req.Catatan,
		time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *ImunisasiService) List(actor workflow.Actor, filter ListFilter) ([]models.Imunisasi, error) {
	if !workflow.CanViewKind(workflow.KindImunisasi, actor) {
		return nil, workflow.Forbiddenf("role ini tidak memiliki akses data klinis")
	}
	filter.normalize()

	query := `
		SELECT im.ID_Imunisasi, im.ID_Pasien, p.Nama, im.ID_Tempat_Praktik,
			im.Tgl_Imunisasi, im.Jenis_Imunisasi, im.Berat_Badan, im.Suhu_Badan,
			im.Nama_Orangtua, im.Catatan,
			im.Status_Verifikasi, im.Alasan_Penolakan, im.Verified_By, im.Verified_At, im.Revisi_Ke
		FROM Imunisasi im
		JOIN Pasien p ON im.ID_Pasien = p.ID_Pasien
		JOIN Tempat_Praktik tp ON im.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
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
		query += " AND im.Status_Verifikasi = ?"
		args = append(args, string(status))
	}
	if filter.Month != 0 {
		query += " AND MONTH(im.Tgl_Imunisasi) = ?"
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		query += " AND YEAR(im.Tgl_Imunisasi) = ?"
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
	query += " ORDER BY im.Tgl_Imunisasi DESC, im.ID_Imunisasi DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Imunisasi
	for rows.Next() {
		var m models.Imunisasi
		var suhu sql.NullFloat64
		var catatan, alasan sql.NullString
		var verifiedBy sql.NullInt64
		var verifiedAt sql.NullTime

		if err := rows.Scan(&m.ID, &m.PasienID, &m.NamaPasien, &m.PracticeID,
			&m.TglImunisasi, &m.JenisImunisasi, &m.BeratBadan, &suhu,
			&m.NamaOrangtua, &catatan,
			&m.StatusVerifikasi, &alasan, &verifiedBy, &verifiedAt, &m.RevisiKe); err != nil {
			return nil, err
		}
		if suhu.Valid {
			m.SuhuBadan = &suhu.Float64
		}
		if catatan.Valid {
			m.Catatan = catatan.String
		}
		applyVerifikasi(&m.Verifikasi, alasan, verifiedBy, verifiedAt)
		result = append(result, m)
	}
	return result, rows.Err()
}

func (s *ImunisasiService) GetByID(actor workflow.Actor, id int) (*models.Imunisasi, error) {
	if !workflow.CanViewKind(workflow.KindImunisasi, actor) {
		return nil, workflow.Forbiddenf("role ini tidak memiliki akses data klinis")
	}

	query := `
		SELECT im.ID_Imunisasi, im.ID_Pasien, p.Nama, im.ID_Tempat_Praktik,
			im.Tgl_Imunisasi, im.Jenis_Imunisasi, im.Berat_Badan, im.Suhu_Badan,
			im.Nama_Orangtua, im.Catatan,
			im.Status_Verifikasi, im.Alasan_Penolakan, im.Verified_By, im.Verified_At, im.Revisi_Ke,
			tp.Nama, tp.ID_User, tp.ID_Desa
		FROM Imunisasi im
		JOIN Pasien p ON im.ID_Pasien = p.ID_Pasien
		JOIN Tempat_Praktik tp ON im.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
		WHERE im.ID_Imunisasi = ?
	`
	var m models.Imunisasi
	var suhu sql.NullFloat64
	var catatan, alasan sql.NullString
	var verifiedBy sql.NullInt64
	var verifiedAt sql.NullTime
	tpRef := models.TempatPraktikRef{}

	err := s.DB.QueryRow(query, id).Scan(&m.ID, &m.PasienID, &m.NamaPasien, &m.PracticeID,
		&m.TglImunisasi, &m.JenisImunisasi, &m.BeratBadan, &suhu,
		&m.NamaOrangtua, &catatan,
		&m.StatusVerifikasi, &alasan, &verifiedBy, &verifiedAt, &m.RevisiKe,
		&tpRef.Nama, &tpRef.UserID, &tpRef.VillageID)
	if err == sql.ErrNoRows {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if suhu.Valid {
		m.SuhuBadan = &suhu.Float64
	}
	if catatan.Valid {
		m.Catatan = catatan.String
	}
	applyVerifikasi(&m.Verifikasi, alasan, verifiedBy, verifiedAt)
	tpRef.PracticeID = m.PracticeID
	m.TempatPraktik = &tpRef
	return &m, nil
}

func (s *ImunisasiService) Update(actor workflow.Actor, id int, req models.ImunisasiRequest) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	effect, err := workflow.AuthorizeUpdate(workflow.KindImunisasi, actor, ref)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE Imunisasi SET
			ID_Pasien = ?, Tgl_Imunisasi = ?, Jenis_Imunisasi = ?,
			Berat_Badan = ?, Suhu_Badan = ?, Nama_Orangtua = ?, Catatan = ?,
			Status_Verifikasi = ?,
			Alasan_Penolakan = IF(?, NULL, Alasan_Penolakan),
			Verified_By = IF(?, NULL, Verified_By),
			Verified_At = IF(?, NULL, Verified_At),
			Revisi_Ke = Revisi_Ke + ?
		WHERE ID_Imunisasi = ? AND Status_Verifikasi = ?
	`
	increment := 0
	if effect.IncrementRevisi {
		increment = 1
	}
	result, err := s.DB.Exec(query,
		req.PasienID, req.TglImunisasi, req.JenisImunisasi,
		req.BeratBadan, req.SuhuBadan, req.NamaOrangtua, req.Catatan,
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

func (s *ImunisasiService) Delete(actor workflow.Actor, id int) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	if err := workflow.AuthorizeDelete(actor, ref); err != nil {
		return err
	}

	result, err := s.DB.Exec(
		"DELETE FROM Imunisasi WHERE ID_Imunisasi = ? AND Status_Verifikasi IN ('PENDING','REJECTED')", id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *ImunisasiService) Verify(actor workflow.Actor, id int, req models.VerifyRequest) error {
	ref, err := s.fetchRef(id)
	if err != nil {
		return err
	}
	decision, err := workflow.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	if err := workflow.AuthorizeVerify(workflow.KindImunisasi, actor, ref, decision, req.Alasan); err != nil {
		return err
	}

	result, err := s.DB.Exec(`
		UPDATE Imunisasi
		SET Status_Verifikasi = ?, Alasan_Penolakan = ?, Verified_By = ?, Verified_At = ?
		WHERE ID_Imunisasi = ? AND Status_Verifikasi = 'PENDING'
	`, string(decision), rejectionReason(decision, req.Alasan), actorUserID(actor), time.Now(), id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
