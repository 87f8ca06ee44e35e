package service_test

import (
	"archive/zip"
	"bytes"
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/service"
	"github.com/applyflow/applyflow/internal/store"
	"github.com/applyflow/applyflow/internal/store/model"
)

// docxWith builds a minimal but valid docx archive around the given text.
func docxWith(text string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	ct, err := w.Create("[Content_Types].xml")
	Expect(err).To(BeNil())
	_, err = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`))
	Expect(err).To(BeNil())
	doc, err := w.Create("word/document.xml")
	Expect(err).To(BeNil())
	_, err = doc.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body>
</w:document>`))
	Expect(err).To(BeNil())
	Expect(w.Close()).To(BeNil())
	return buf.Bytes()
}

var _ = Describe("application service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		srv    *service.ApplicationService
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())

		srv = service.NewApplicationService(s)
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from applications;")
	})

	validForm := func() service.SubmissionForm {
		return service.SubmissionForm{
			JobID:       uuid.New(),
			ApplicantID: "applicant-1",
			Question1:   "yes",
			Resume:      &service.Upload{Filename: "resume.docx", Data: docxWith("ten years of spreadsheets")},
		}
	}

	Context("submit", func() {
		It("creates an unreviewed application with the extracted resume text", func() {
			form := validForm()
			application, err := srv.SubmitApplication(context.TODO(), form)
			Expect(err).To(BeNil())

			Expect(application.ID).ToNot(Equal(uuid.Nil))
			Expect(application.Status).To(Equal(model.ApplicationStatusUnreviewed))
			Expect(application.ResumeText).To(Equal("ten years of spreadsheets"))
			Expect(application.JobApplicationText).To(Equal(model.NoResumeUploaded))
			Expect(application.Question1).To(Equal("yes"))
		})

		It("extracts the optional job application letter", func() {
			form := validForm()
			form.JobApplication = &service.Upload{Filename: "letter.docx", Data: docxWith("please hire me")}

			application, err := srv.SubmitApplication(context.TODO(), form)
			Expect(err).To(BeNil())
			Expect(application.JobApplicationText).To(Equal("please hire me"))
		})

		It("rejects a missing applicant id", func() {
			form := validForm()
			form.ApplicantID = ""

			_, err := srv.SubmitApplication(context.TODO(), form)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRequest{}))
		})

		It("rejects a missing job id", func() {
			form := validForm()
			form.JobID = uuid.Nil

			_, err := srv.SubmitApplication(context.TODO(), form)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRequest{}))
		})

		It("rejects a missing resume", func() {
			form := validForm()
			form.Resume = nil

			_, err := srv.SubmitApplication(context.TODO(), form)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRequest{}))
		})

		It("rejects an unsupported resume format", func() {
			form := validForm()
			form.Resume = &service.Upload{Filename: "resume.txt", Data: []byte("plain text")}

			_, err := srv.SubmitApplication(context.TODO(), form)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRequest{}))
		})

		It("reports a corrupted document", func() {
			form := validForm()
			form.Resume = &service.Upload{Filename: "resume.pdf", Data: []byte("not a pdf at all")}

			_, err := srv.SubmitApplication(context.TODO(), form)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrFileCorrupted{}))

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) from applications;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})
	})

	Context("get", func() {
		It("reports a missing application", func() {
			_, err := srv.GetApplication(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})
})
