package zip_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/cargueiro/cargueiro/zip"
)

var _ = Describe("Archive", func() {

	var (
		ctx       context.Context
		sourceDir string
		workDir   string
		zipPath   string
		entries   []zip.Entry
		err       error
	)

	BeforeEach(func() {
		ctx = context.Background()

		workDir, err = ioutil.TempDir("", "cargueiro-test")
		Expect(err).ToNot(HaveOccurred())

		sourceDir = filepath.Join(workDir, "src")
		zipPath = filepath.Join(workDir, "out.zip")

		Expect(os.MkdirAll(sourceDir, 0755)).To(Succeed())
	})

	AfterEach(func() {
		os.RemoveAll(workDir)
	})

	JustBeforeEach(func() {
		entries, err = zip.Archive(ctx, sourceDir, zipPath)
	})

	Context("with a source directory that does not exist", func() {
		BeforeEach(func() {
			sourceDir = filepath.Join(workDir, "nowhere")
		})

		It("fails", func() {
			Expect(err).To(HaveOccurred())
		})

		It("does not create the archive", func() {
			_, statErr := os.Stat(zipPath)
			Expect(os.IsNotExist(statErr)).To(BeTrue())
		})
	})

	Context("with an empty source directory", func() {
		It("succeeds", func() {
			Expect(err).ToNot(HaveOccurred())
		})

		It("produces a valid archive with zero entries", func() {
			Expect(entries).To(BeEmpty())
			Expect(readArchive(zipPath)).To(BeEmpty())
		})
	})

	Context("with files in nested directories", func() {
		BeforeEach(func() {
			Expect(os.MkdirAll(filepath.Join(sourceDir, "sub"), 0755)).
				To(Succeed())
			Expect(ioutil.WriteFile(
				filepath.Join(sourceDir, "a.txt"), []byte("hello"), 0644)).
				To(Succeed())
			Expect(ioutil.WriteFile(
				filepath.Join(sourceDir, "sub", "b.txt"), []byte("world"), 0644)).
				To(Succeed())
		})

		It("succeeds", func() {
			Expect(err).ToNot(HaveOccurred())
		})

		It("archives exactly the regular files, relative to the root", func() {
			Expect(readArchive(zipPath)).To(Equal(map[string]string{
				"a.txt":     "hello",
				"sub/b.txt": "world",
			}))
		})

		It("reports the entries it wrote", func() {
			names := []string{}
			for _, entry := range entries {
				names = append(names, entry.Name)
			}

			Expect(names).To(ConsistOf("a.txt", "sub/b.txt"))
		})

		It("never leaks absolute or parent paths into entry names", func() {
			for name := range readArchive(zipPath) {
				Expect(filepath.IsAbs(name)).To(BeFalse())
				Expect(strings.Contains(name, "..")).To(BeFalse())
			}
		})

		It("does not mutate the source directory", func() {
			b, readErr := ioutil.ReadFile(filepath.Join(sourceDir, "a.txt"))
			Expect(readErr).ToNot(HaveOccurred())
			Expect(string(b)).To(Equal("hello"))
		})
	})

	Context("with a symbolic link in the source directory", func() {
		BeforeEach(func() {
			Expect(ioutil.WriteFile(
				filepath.Join(sourceDir, "real.txt"), []byte("content"), 0644)).
				To(Succeed())
			Expect(os.Symlink(
				filepath.Join(sourceDir, "real.txt"),
				filepath.Join(sourceDir, "link.txt"))).
				To(Succeed())
		})

		It("skips the link", func() {
			Expect(err).ToNot(HaveOccurred())
			Expect(readArchive(zipPath)).To(Equal(map[string]string{
				"real.txt": "content",
			}))
		})
	})

	Context("overwriting a previous archive", func() {
		BeforeEach(func() {
			Expect(ioutil.WriteFile(zipPath, []byte("stale"), 0644)).
				To(Succeed())
			Expect(ioutil.WriteFile(
				filepath.Join(sourceDir, "a.txt"), []byte("fresh"), 0644)).
				To(Succeed())
		})

		It("replaces it entirely", func() {
			Expect(err).ToNot(HaveOccurred())
			Expect(readArchive(zipPath)).To(Equal(map[string]string{
				"a.txt": "fresh",
			}))
		})
	})
})

var _ = Describe("NewManifestV1", func() {

	var (
		ctx       context.Context
		workDir   string
		sourceDir string
		zipPath   string
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		workDir, err = ioutil.TempDir("", "cargueiro-test")
		Expect(err).ToNot(HaveOccurred())

		sourceDir = filepath.Join(workDir, "src")
		zipPath = filepath.Join(workDir, "out.zip")

		Expect(os.MkdirAll(sourceDir, 0755)).To(Succeed())
		Expect(ioutil.WriteFile(
			filepath.Join(sourceDir, "a.txt"), []byte("hello"), 0644)).
			To(Succeed())
	})

	AfterEach(func() {
		os.RemoveAll(workDir)
	})

	It("digests the archive and every entry", func() {
		entries, err := zip.Archive(ctx, sourceDir, zipPath)
		Expect(err).ToNot(HaveOccurred())

		manifest, err := zip.NewManifestV1(ctx, zipPath, entries)
		Expect(err).ToNot(HaveOccurred())

		Expect(manifest.Kind).To(Equal(zip.ManifestV1Kind))
		Expect(manifest.Data.Archive).To(Equal(zipPath))
		Expect(manifest.Data.Digest).To(HavePrefix("sha256:"))

		sum := sha256.Sum256([]byte("hello"))

		Expect(manifest.Data.Entries).To(HaveLen(1))
		Expect(manifest.Data.Entries[0].Name).To(Equal("a.txt"))
		Expect(manifest.Data.Entries[0].Digest).To(
			Equal("sha256:" + hex.EncodeToString(sum[:])))
	})
})
