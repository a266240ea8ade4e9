package main

import (
	"context"
	"fmt"

	"github.com/unicrm/unicli/core/ai"
)

func (cli *commandLine) recommend(interests string) error {
	if _, err := cli.requireUser(); err != nil {
		return err
	}
	recs, err := cli.ai.Recommend(context.Background(), interests)
	if err != nil {
		return cli.printFieldErrors(err)
	}
	if len(recs) == 0 {
		fmt.Fprintln(cli.out, "no recommendations found")
		return nil
	}

	w := cli.tabWriter()
	fmt.Fprintln(w, "SCORE\tCOURSE\tWHY")
	for _, rec := range recs {
		fmt.Fprintf(w, "%.2f\t%s\t%s\n", rec.Score, rec.Course.Title, rec.Reason)
	}
	return w.Flush()
}

// syllabus generates a syllabus and either prints it or, with saveDir set,
// writes the Markdown export there.
func (cli *commandLine) syllabus(req ai.SyllabusRequest, saveDir string) error {
	if _, err := cli.requireUser(); err != nil {
		return err
	}
	syl, err := cli.ai.GenerateSyllabus(context.Background(), req)
	if err != nil {
		return cli.printFieldErrors(err)
	}

	if saveDir != "" {
		path, err := ai.SaveMarkdown(saveDir, req.Topic, syl)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "syllabus saved: %s\n", path)
		return nil
	}
	fmt.Fprint(cli.out, ai.ExportMarkdown(req.Topic, syl))
	return nil
}
