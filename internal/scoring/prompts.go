package scoring

import "fmt"

const skillExtractionPrompt = `You extract skills from resumes and job descriptions.
Return ONLY a JSON object of the form {"skills": ["skill", ...]}.
List concrete technical and professional skills, tools, languages and frameworks.
Use short canonical names. Do not include explanations.`

const experiencePrompt = `You assess how well a candidate's seniority and experience match a job.
Return ONLY a JSON object of the form {"score": <integer 0-100>, "rationale": "<one sentence>"}.
100 means the experience level is an ideal match, 0 means no relevant experience.`

const insightsPrompt = `You are a hiring advisor reviewing a candidate's resume against a job description.
Return ONLY a JSON object with this shape:
{
  "strengths": [{"category": "...", "description": "...", "confidence": "high|medium|low"}],
  "gaps": [{"category": "...", "description": "...", "severity": "high|medium|low"}],
  "recommendations": [{"category": "...", "action": "...", "priority": "high|medium|low"}]
}
Keep each list to at most five items.`

func experienceInput(resume, jobDescription string) string {
	return fmt.Sprintf("RESUME:\n%s\n\nJOB DESCRIPTION:\n%s", resume, jobDescription)
}

func insightsInput(resume, jobDescription string, semantic, skill, experience, probability int) string {
	return fmt.Sprintf(
		"SCORES:\nsemantic_similarity=%d\nskill_coverage=%d\nexperience_alignment=%d\nselection_probability=%d\n\nRESUME:\n%s\n\nJOB DESCRIPTION:\n%s",
		semantic, skill, experience, probability, resume, jobDescription,
	)
}
